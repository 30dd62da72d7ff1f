package main

import (
	"fmt"
	"strings"

	"github.com/philhmdresearch-afk/trust-ai-study/internal/catalog"
	"github.com/philhmdresearch-afk/trust-ai-study/internal/randomize"
	"github.com/philhmdresearch-afk/trust-ai-study/internal/stages"
	"github.com/philhmdresearch-afk/trust-ai-study/internal/store"
	"github.com/philhmdresearch-afk/trust-ai-study/internal/studyconfig"
	"github.com/philhmdresearch-afk/trust-ai-study/internal/validation"
)

// loadStudy assembles the shared command dependencies: project config,
// catalog, and a controller bound to the session store.
func loadStudy() (*studyconfig.StudyConfig, *stages.Controller, error) {
	cfg, err := studyconfig.Load(".")
	if err != nil {
		return nil, nil, err
	}

	cat, err := loadCatalog(cfg)
	if err != nil {
		return nil, nil, err
	}

	st := store.NewFileStore(cfg.Paths.Data, randomize.New())
	ctrl, err := stages.NewController(st, cat, randomize.New())
	if err != nil {
		return nil, nil, err
	}
	return cfg, ctrl, nil
}

// loadCatalog returns the configured catalog override, schema-validated,
// or the embedded default.
func loadCatalog(cfg *studyconfig.StudyConfig) (*catalog.Catalog, error) {
	if cfg.Catalog.Path == "" {
		return catalog.Default(), nil
	}

	errs, err := validation.ValidateCatalogFile(cfg.Catalog.Path)
	if err != nil {
		return nil, err
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("catalog %s failed validation:\n  %s",
			cfg.Catalog.Path, strings.Join(errs, "\n  "))
	}
	return catalog.LoadFile(cfg.Catalog.Path)
}
