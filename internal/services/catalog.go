package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/yungbote/vitalplan-backend/internal/catalog"
	"github.com/yungbote/vitalplan-backend/internal/logger"
	"github.com/yungbote/vitalplan-backend/internal/plan"
	"github.com/yungbote/vitalplan-backend/internal/types"
)

// Snapshot is one materialized view of the external content: routine
// catalog, rule table, packages and super-routine templates. Routines()
// hands out fresh clones so concurrent scheduling runs never share rule
// annotations.
type Snapshot struct {
	routines  []*types.Routine
	Rules     *types.RuleSet
	Packages  []types.RoutinePackage
	Templates map[int]types.SuperRoutineTemplate
}

func (s *Snapshot) Routines() []*types.Routine {
	out := make([]*types.Routine, 0, len(s.routines))
	for _, routine := range s.routines {
		out = append(out, routine.Clone())
	}
	return out
}

type CatalogService interface {
	Snapshot(ctx context.Context) (*Snapshot, error)
}

type catalogService struct {
	log          *logger.Logger
	cache        *catalog.SnapshotCache
	catalogPath  string
	rulesPath    string
	packagesPath string
}

// NewCatalogService serves snapshots from the configured files, fronted by
// the Redis byte cache when one is available (cache == nil is fine).
func NewCatalogService(baseLog *logger.Logger, cache *catalog.SnapshotCache, catalogPath, rulesPath, packagesPath string) CatalogService {
	return &catalogService{
		log:          baseLog.With("service", "CatalogService"),
		cache:        cache,
		catalogPath:  catalogPath,
		rulesPath:    rulesPath,
		packagesPath: packagesPath,
	}
}

func (s *catalogService) Snapshot(ctx context.Context) (*Snapshot, error) {
	var (
		routines []*types.Routine
		rules    *types.RuleSet
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		routines, err = s.loadRoutines(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		rules, err = s.loadRules(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}

	packages, err := s.loadPackages()
	if err != nil {
		return nil, err
	}
	return &Snapshot{
		routines:  routines,
		Rules:     rules,
		Packages:  packages,
		Templates: plan.DefaultTemplates(),
	}, nil
}

// loadRoutines reads the catalog snapshot, through the byte cache when one
// is configured and straight from the file otherwise.
func (s *catalogService) loadRoutines(ctx context.Context) ([]*types.Routine, error) {
	if s.cache == nil {
		return catalog.LoadCatalog(s.catalogPath)
	}
	data, err := s.readThroughCache(ctx, "vitalplan:snapshot:catalog", s.catalogPath)
	if err != nil {
		return nil, err
	}
	return catalog.ParseCatalog(data, filepath.Ext(s.catalogPath))
}

func (s *catalogService) loadRules(ctx context.Context) (*types.RuleSet, error) {
	if s.cache == nil {
		return catalog.LoadRuleSet(s.rulesPath)
	}
	data, err := s.readThroughCache(ctx, "vitalplan:snapshot:rules", s.rulesPath)
	if err != nil {
		return nil, err
	}
	return types.ParseRuleSet(data)
}

func (s *catalogService) readThroughCache(ctx context.Context, key, path string) ([]byte, error) {
	if data, ok := s.cache.Get(ctx, key); ok {
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot file %s: %w", path, err)
	}
	s.cache.Set(ctx, key, data)
	return data, nil
}

func (s *catalogService) loadPackages() ([]types.RoutinePackage, error) {
	if s.packagesPath == "" {
		return plan.DefaultPackages(), nil
	}
	data, err := os.ReadFile(s.packagesPath)
	if err != nil {
		return nil, fmt.Errorf("read packages file: %w", err)
	}
	var packages []types.RoutinePackage
	if err := yaml.Unmarshal(data, &packages); err != nil {
		return nil, fmt.Errorf("parse packages file: %w", err)
	}
	return packages, nil
}
