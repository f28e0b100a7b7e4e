package services

import (
	"Reelhouse/internal/helpers"
	"Reelhouse/internal/index"
	"Reelhouse/internal/layout"
	"Reelhouse/internal/metrics"
	"errors"
	"fmt"
	"github.com/sirupsen/logrus"
	"os"
	"path/filepath"
	"sort"
)

type FolderKind string

const (
	FolderCharacter      FolderKind = "character"
	FolderProps          FolderKind = "props"
	FolderComponent      FolderKind = "component"
	FolderEnvironment    FolderKind = "environment"
	FolderRenderTemplate FolderKind = "render_template"
	FolderCharTemplate   FolderKind = "char_template"
	FolderEnvTemplate    FolderKind = "env_template"
	FolderCharDesign     FolderKind = "char_design"
	FolderPropsDesign    FolderKind = "props_design"
	FolderEnvDesign      FolderKind = "env_design"
	FolderContinuity     FolderKind = "continuity"
)

// reference makes the seed file of Into load the seed file of From.
type reference struct {
	From string
	Into string
}

// assetFamily describes what one folder kind creates: a "__<name>" folder in
// every home, initial files for Seeds, and initial files for the reference
// targets that load their source category's file.
type assetFamily struct {
	Homes      []string
	Seeds      []string
	References []reference
}

type provisioner func(s *assetServiceImpl, session *Session, idx *index.Index, name string, result *FolderResult) error

var folderKinds = map[FolderKind]provisioner{
	FolderCharacter: family(assetFamily{
		Homes: []string{"rig_char", "def_char", "geo_hi_char", "geo_low_char", "tex_char", "surf_char", "ligtemp_char"},
		Seeds: []string{"geo_hi_char", "geo_low_char"},
		References: []reference{
			{From: "geo_hi_char", Into: "def_char"},
			{From: "geo_low_char", Into: "rig_char"},
			{From: "geo_hi_char", Into: "surf_char"},
			{From: "geo_hi_char", Into: "ligtemp_char"},
		},
	}),
	FolderProps: family(assetFamily{
		Homes: []string{"rig_props", "def_props", "geo_hi_props", "geo_low_props", "tex_props", "surf_props"},
		Seeds: []string{"geo_hi_props", "geo_low_props"},
		References: []reference{
			{From: "geo_hi_props", Into: "def_props"},
			{From: "geo_low_props", Into: "rig_props"},
			{From: "geo_hi_props", Into: "surf_props"},
		},
	}),
	FolderComponent: family(assetFamily{
		Homes: []string{"geo_hi_com", "geo_low_com", "tex_com", "surf_com"},
		Seeds: []string{"geo_hi_com", "geo_low_com"},
		References: []reference{
			{From: "geo_hi_com", Into: "surf_com"},
		},
	}),
	FolderEnvironment: family(assetFamily{
		Homes: []string{"geo_hi_env", "geo_low_env", "ligtemp_env"},
		Seeds: []string{"geo_hi_env", "geo_low_env"},
		References: []reference{
			{From: "geo_hi_env", Into: "ligtemp_env"},
		},
	}),
	FolderRenderTemplate: family(assetFamily{Homes: []string{"render_template"}}),
	FolderCharTemplate:   family(assetFamily{Homes: []string{"ligtemp_char"}}),
	FolderEnvTemplate:    family(assetFamily{Homes: []string{"ligtemp_env"}}),
	FolderCharDesign:     family(assetFamily{Homes: []string{"design_char"}}),
	FolderPropsDesign:    family(assetFamily{Homes: []string{"design_props"}}),
	FolderEnvDesign:      family(assetFamily{Homes: []string{"design_env"}}),
	FolderContinuity:     family(assetFamily{Homes: []string{"continuity"}}),
}

// FolderKinds lists the supported kinds, sorted.
func FolderKinds() []FolderKind {
	kinds := make([]FolderKind, 0, len(folderKinds))
	for kind := range folderKinds {
		kinds = append(kinds, kind)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}

type FolderResult struct {
	Kind    FolderKind
	Folders []string
	Created []string
	Seeded  []string
}

type AssetService interface {
	CreateFolders(projectID uint, kind FolderKind, names []string) (*FolderResult, error)
}

type assetServiceImpl struct {
	projectService ProjectService
	logService     LogService
	seed           SceneSeed
}

func NewAssetService(projectService ProjectService, seed SceneSeed, logService LogService) AssetService {
	return &assetServiceImpl{
		projectService: projectService,
		logService:     logService,
		seed:           seed,
	}
}

// CreateFolders provisions one "__<name>" folder per name for kind. Existing
// folders and files are left as they are. A missing category home fails that
// home only.
func (s *assetServiceImpl) CreateFolders(projectID uint, kind FolderKind, names []string) (*FolderResult, error) {
	provision, ok := folderKinds[kind]
	if !ok {
		return nil, fmt.Errorf("%w: unknown folder kind %q", ErrInvalidInput, kind)
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("%w: no folder names given", ErrInvalidInput)
	}
	for _, name := range names {
		if err := validateFolderName(helpers.UnmarkReserved(name)); err != nil {
			return nil, err
		}
	}
	session, err := s.projectService.OpenSession(projectID)
	if err != nil {
		return nil, err
	}
	session.Lock()
	defer session.Unlock()

	idx, err := session.Index()
	if err != nil {
		return nil, err
	}
	result := &FolderResult{Kind: kind}
	var errs []error
	for _, name := range names {
		if err := provision(s, session, idx, name, result); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
		}
	}
	metrics.RecordDirectoriesCreated("assets", len(result.Created))
	session.log.WithFields(logrus.Fields{
		"job":     "folders",
		"kind":    string(kind),
		"names":   len(names),
		"created": len(result.Created),
		"seeded":  len(result.Seeded),
	}).Info("asset folders provisioned")
	return result, errors.Join(errs...)
}

func family(f assetFamily) provisioner {
	return func(s *assetServiceImpl, session *Session, idx *index.Index, name string, result *FolderResult) error {
		folder := helpers.MarkReserved(name)
		plain := helpers.UnmarkReserved(name)
		hidden := layout.NewHiddenFolders(session.log, nil)

		var errs []error
		dirs := map[string]string{}
		for _, key := range f.Homes {
			home, ok := idx.Lookup(key)
			if !ok {
				errs = append(errs, fmt.Errorf("%w: %s", ErrCategoryNotProvisioned, key))
				continue
			}
			dir := filepath.Join(home, folder)
			err := os.Mkdir(dir, os.ModePerm)
			switch {
			case err == nil:
				result.Created = append(result.Created, dir)
			case errors.Is(err, os.ErrExist):
			default:
				errs = append(errs, err)
				continue
			}
			made, err := hidden.EnsureHiddenChildren(dir)
			result.Created = append(result.Created, made...)
			if err != nil {
				errs = append(errs, err)
				continue
			}
			dirs[key] = dir
			result.Folders = append(result.Folders, relativeToRoot(session.Root, dir))
		}

		files := func(key string) (string, bool) {
			dir, ok := dirs[key]
			if !ok {
				return "", false
			}
			category, _ := session.categories.ByKey(key)
			return filepath.Join(dir, category.AssetFileName(plain, s.seed.Extension)), true
		}

		for _, key := range f.Seeds {
			dst, ok := files(key)
			if !ok {
				continue
			}
			created, err := s.seed.Place(dst)
			if err != nil {
				errs = append(errs, err)
				continue
			}
			if created {
				result.Seeded = append(result.Seeded, relativeToRoot(session.Root, dst))
			}
		}

		for _, ref := range f.References {
			src, okSrc := files(ref.From)
			dst, okDst := files(ref.Into)
			if !okSrc || !okDst {
				continue
			}
			created, err := s.seed.Place(dst)
			if err != nil {
				errs = append(errs, err)
				continue
			}
			if !created {
				continue
			}
			result.Seeded = append(result.Seeded, relativeToRoot(session.Root, dst))
			if err := helpers.InsertLines(dst, 4, ReferenceLines(src)...); err != nil {
				errs = append(errs, err)
			}
		}
		return errors.Join(errs...)
	}
}

// ReferenceLines are the two directives that load src into a scene file,
// with src's base name as namespace.
func ReferenceLines(src string) []string {
	name, _ := helpers.SplitExtension(filepath.Base(src))
	path := filepath.ToSlash(src)
	return []string{
		fmt.Sprintf("file -rdi 1 -ns \"%[1]s\" -rfn \"%[1]sRN\" -op \"v=0;\" -typ \"mayaAscii\" \"%[2]s\";\n", name, path),
		fmt.Sprintf("file -r -ns \"%[1]s\" -dr 1 -rfn \"%[1]sRN\" -op \"v=0;\" -typ \"mayaAscii\" \"%[2]s\";\n", name, path),
	}
}
