package main

import (
	"fmt"
	"log"

	"github.com/automoto/tileforge/preview"
	"github.com/gdamore/tcell/v2"
)

func runPreview(o options) error {
	set := loadSet(o)
	m, err := loadOrGenerate(o, set)
	if err != nil {
		return err
	}
	if _, err := fillCatalogs(o, set); err != nil {
		log.Printf("Warning: Drawing transitions and circuits as terrain: %v", err)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer screen.Fini()

	r := preview.NewRenderer(screen, set.GroupModel(), set.Transitions, set.Circuits)
	preview.NewView(r, m).Run()
	return nil
}
