package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"

	"github.com/scenekit/scenemerge/combiner"
	"github.com/scenekit/scenemerge/store"
	"github.com/spf13/pflag"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(args []string) error {
	var output string
	var materialItems, animationItems []string
	var materialSetName, animationSetName, timecodeMode string

	flags := pflag.NewFlagSet("scenemerge", pflag.ContinueOnError)
	flags.StringVarP(&output, "output", "o", "", "output container file")
	flags.StringArrayVarP(&materialItems, "material-variants", "m", nil,
		"documents for the material variants, repeated per item; either document paths "+
			"(variant named from the file name) or alternating NAME FILE pairs")
	flags.StringArrayVarP(&animationItems, "animation-variants", "a", nil,
		"documents for the animation variants, repeated per item; either document paths "+
			"(variant named from the file name) or alternating NAME FILE pairs")
	flags.StringVar(&materialSetName, "material-variantset-name", "Material", "material variant set name")
	flags.StringVar(&animationSetName, "animation-variantset-name", "Animation", "animation variant set name")
	flags.StringVar(&timecodeMode, "timecode-mode", "min", "combined time range: min (narrow) or max (widen)")
	if err := flags.Parse(args); err != nil {
		return err
	}

	if !strings.HasSuffix(strings.ToLower(output), store.ExtContainer) {
		return fmt.Errorf("the output file must have a %s extension", store.ExtContainer)
	}

	var policy combiner.TimeRangePolicy
	switch strings.ToLower(timecodeMode) {
	case "min":
		policy = combiner.Narrow
	case "max":
		policy = combiner.Widen
	default:
		return fmt.Errorf("unsupported timecode mode: %s", timecodeMode)
	}

	materialVariants, err := variantMapping(materialItems)
	if err != nil {
		return err
	}
	animationVariants, err := variantMapping(animationItems)
	if err != nil {
		return err
	}
	if len(materialVariants) == 0 && len(animationVariants) == 0 {
		flags.PrintDefaults()
		return fmt.Errorf("at least one of --material-variants or --animation-variants is required")
	}

	engine, err := combiner.New(nil,
		combiner.WithMaterialSetName(materialSetName),
		combiner.WithAnimationSetName(animationSetName))
	if err != nil {
		return err
	}
	defer engine.Close()

	// A random base discourages relying on one particular document's
	// hierarchy being the anchor.
	documents := append(materialVariants.Documents(), animationVariants.Documents()...)
	base := documents[rand.Intn(len(documents))]

	result, err := engine.Combine(context.Background(), base, materialVariants, animationVariants, policy, output)
	if err != nil {
		return err
	}
	fmt.Println(result)
	return nil
}

// variantMapping parses the dual-form variant list. The first item decides
// the form: a recognized document extension means every item is a document
// path and the variant is named from its file name; no extension means
// alternating NAME FILE pairs.
func variantMapping(items []string) (combiner.VariantMapping, error) {
	if len(items) == 0 {
		return nil, nil
	}
	switch ext := strings.ToLower(filepath.Ext(items[0])); {
	case ext == store.ExtDocument || ext == store.ExtContainer:
		var result combiner.VariantMapping
		for _, item := range items {
			location, err := documentLocation(item)
			if err != nil {
				return nil, err
			}
			name := strings.TrimSuffix(filepath.Base(item), filepath.Ext(item))
			result = append(result, combiner.VariantEntry{Document: location, Variant: name})
		}
		return result, nil
	case ext == "":
		if len(items)%2 != 0 {
			return nil, fmt.Errorf("%s has no corresponding file to associate with", items[len(items)-1])
		}
		var result combiner.VariantMapping
		for i := 0; i < len(items); i += 2 {
			location, err := documentLocation(items[i+1])
			if err != nil {
				return nil, err
			}
			result = append(result, combiner.VariantEntry{Document: location, Variant: items[i]})
		}
		return result, nil
	default:
		return nil, fmt.Errorf("unsupported file extension: %s", items[0])
	}
}

func documentLocation(item string) (string, error) {
	ext := strings.ToLower(filepath.Ext(item))
	if ext != store.ExtDocument && ext != store.ExtContainer {
		return "", fmt.Errorf("unsupported file extension: %s", item)
	}
	location, err := filepath.Abs(item)
	if err != nil {
		return "", err
	}
	if _, err := os.Stat(location); err != nil {
		return "", fmt.Errorf("could not find %s", location)
	}
	return location, nil
}
