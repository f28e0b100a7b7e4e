package index

import (
	"fmt"
	"strings"
)

type Kind int

const (
	// KindAsset homes hold "__<name>" asset folders.
	KindAsset Kind = iota
	// KindShot homes hold "SCENE_<n>" folders.
	KindShot
)

func (k Kind) String() string {
	switch k {
	case KindAsset:
		return "asset"
	case KindShot:
		return "shot"
	}
	return "unknown"
}

// Category is one kind of leaf location, identified by the directory names
// leading to it from the project root.
type Category struct {
	Key      string
	Kind     Kind
	Segments []string
	// SeedsShotFiles marks shot categories that get an initial scene file
	// per shot.
	SeedsShotFiles bool
	// Anchored homes are recorded as soon as the directory exists, even
	// while still empty.
	Anchored bool
}

func (c Category) Signature() string {
	return signature(c.Segments)
}

func (c Category) String() string {
	return fmt.Sprintf("%s (%s)", c.Key, strings.Join(c.Segments, "/"))
}

// AssetFileName is the initial file of an asset inside its "__<name>" folder:
// "<key>_<name><ext>".
func (c Category) AssetFileName(name string, ext string) string {
	return fmt.Sprintf("%s_%s%s", c.Key, name, ext)
}

// ShotFileName is the initial file of a shot: "<key>_scene_<s>_shot_<n><ext>".
func (c Category) ShotFileName(scene int, shot int, ext string) string {
	return fmt.Sprintf("%s_scene_%d_shot_%d%s", c.Key, scene, shot, ext)
}

func signature(segments []string) string {
	return strings.Join(segments, "/")
}

func asset(key string, segments ...string) Category {
	return Category{Key: key, Kind: KindAsset, Segments: segments}
}

func shot(key string, seeds bool, segments ...string) Category {
	return Category{Key: key, Kind: KindShot, Segments: segments, SeedsShotFiles: seeds}
}

// Categories is an ordered category list; the first match wins.
type Categories []Category

func (cs Categories) ByKey(key string) (Category, bool) {
	for _, c := range cs {
		if c.Key == key {
			return c, true
		}
	}
	return Category{}, false
}

func (cs Categories) OfKind(kind Kind) Categories {
	var out Categories
	for _, c := range cs {
		if c.Kind == kind {
			out = append(out, c)
		}
	}
	return out
}

// MaxDepth is the deepest signature, in segments.
func (cs Categories) MaxDepth() int {
	depth := 0
	for _, c := range cs {
		if len(c.Segments) > depth {
			depth = len(c.Segments)
		}
	}
	return depth
}

// DefaultCategories matches the default department template.
func DefaultCategories() Categories {
	return Categories{
		asset("geo_hi_char", "MODEL", "Characters", "High_Resolution"),
		asset("geo_low_char", "MODEL", "Characters", "Low_Resolution"),
		asset("geo_hi_props", "MODEL", "Props", "High_Resolution"),
		asset("geo_low_props", "MODEL", "Props", "Low_Resolution"),
		asset("geo_hi_com", "MODEL", "Environments", "High_Resolution", "Components"),
		asset("geo_low_com", "MODEL", "Environments", "Low_Resolution", "Components"),
		asset("geo_hi_env", "MODEL", "Environments", "High_Resolution", "Assembled_Scenes"),
		asset("geo_low_env", "MODEL", "Environments", "Low_Resolution", "Assembled_Scenes"),

		asset("rig_char", "SETUP", "Characters", "Rigged"),
		asset("def_char", "SETUP", "Characters", "Deformed"),
		asset("rig_props", "SETUP", "Props", "Rigged"),
		asset("def_props", "SETUP", "Props", "Deformed"),

		asset("surf_char", "SURFACING", "Shaders", "Characters"),
		asset("surf_props", "SURFACING", "Shaders", "Props"),
		asset("surf_com", "SURFACING", "Shaders", "Components"),
		asset("tex_char", "SURFACING", "Textures", "Characters"),
		asset("tex_props", "SURFACING", "Textures", "Props"),
		asset("tex_com", "SURFACING", "Textures", "Components"),

		asset("ligtemp_char", "LIGHTING", "Templates", "Characters"),
		asset("ligtemp_env", "LIGHTING", "Templates", "Environments"),
		asset("render_template", "LIGHTING", "Templates", "Rendering"),

		asset("design_char", "2D", "Concept_Design", "Characters"),
		asset("design_props", "2D", "Concept_Design", "Props"),
		asset("design_env", "2D", "Concept_Design", "Environments"),
		{Key: "continuity", Kind: KindAsset, Segments: []string{"2D", "Continuities"}, Anchored: true},

		shot("anim", true, "ANIMATION", "Finals"),
		shot("layout", true, "ANIMATION", "Layouts"),
		shot("anim_cache", true, "ANIMATION", "Cached"),
		shot("vfx", true, "VFX", "SHOTS"),
		shot("vfx_cache", true, "VFX", "Cached"),
		shot("light", true, "LIGHTING", "SHOTS"),
		shot("render", true, "RENDERING"),
		shot("geo", true, "MODEL", "SHOTS"),
		shot("anim_playblast", false, "ANIMATION", "Playblasts", "Finals_MOV"),
		shot("layout_playblast", false, "ANIMATION", "Playblasts", "Layouts_MOV"),
	}
}
