package main

import (
	"log"

	"github.com/automoto/tileforge/catalog"
)

func runExtract(o options) error {
	set := loadSet(o)
	set.Transitions, set.Circuits = nil, nil

	transitions, circuits, levels, err := catalogs(o, set)
	if err != nil {
		return err
	}
	if err := catalog.SaveCatalogs(o.catalogDir, transitions, circuits); err != nil {
		return err
	}
	log.Printf("Extracted %d transitions and %d circuits from %d levels into %s",
		len(transitions), len(circuits), len(levels), o.catalogDir)
	return nil
}
