package layout

// DefaultNoShotFolders are category folders that never hold scene/shot trees.
var DefaultNoShotFolders = []string{"C++", "Python", "Textures", "Continuities", "Comp_Files"}

const (
	DefaultScenePrefix = "SCENE_"
	DefaultShotPrefix  = "__Shot_"
)

// DefaultTemplate is the studio department tree.
func DefaultTemplate() Node {
	char := Dir("__char_name")
	props := Dir("__props_name")
	env := Dir("__env_name")
	obj := Dir("__obj_name")
	render := Dir("__render_template")

	design := NewGroup(
		Named("Characters", char),
		Named("Environments", env),
		Named("Props", props),
	)
	conceptDesign := NewGroup(Named("Concept_Design", design))
	playblasts := NewGroup(Named("Playblasts", Seq(Dir("Finals_MOV"), Dir("Layouts_MOV"))))
	templates := NewGroup(Named("Templates", NewGroup(
		Named("Characters", char),
		Named("Environments", env),
		Named("Rendering", render),
	)))

	geoCharacters := NewGroup(Named("Characters", NewGroup(
		Named("High_Resolution", char),
		Named("Low_Resolution", char),
	)))
	envResolution := Seq(
		NewGroup(Named("Assembled_Scenes", Seq(env))),
		NewGroup(Named("Components", obj)),
	)
	geoEnvironments := NewGroup(Named("Environments", NewGroup(
		Named("High_Resolution", envResolution),
		Named("Low_Resolution", envResolution),
	)))
	geoProps := NewGroup(Named("Props", NewGroup(
		Named("High_Resolution", props),
		Named("Low_Resolution", props),
	)))

	surfacingGroup := NewGroup(
		Named("Characters", char),
		Named("Components", env),
		Named("Props", props),
	)

	characterSetup := NewGroup(Named("Characters", Seq(
		NewGroup(Named("Deformed", char)),
		NewGroup(Named("Rigged", char)),
	)))
	propsSetup := NewGroup(Named("Props", Seq(
		NewGroup(Named("Deformed", props)),
		NewGroup(Named("Rigged", props)),
	)))

	return NewGroup(
		Named("2D", Seq(conceptDesign, Dir("Continuities"))),
		Named("ANIMATION", Seq(Dir("Cached"), Dir("Finals"), Dir("Layouts"), playblasts)),
		Named("COMPOSITION", Seq(Dir("Comp_Files"), Dir("Rendered"))),
		Named("LIGHTING", Seq(templates, Dir("SHOTS"))),
		Named("MODEL", Seq(geoCharacters, geoEnvironments, geoProps, Dir("SHOTS"))),
		Named("RENDERING", Leaf{}),
		Named("SETUP", Seq(characterSetup, propsSetup)),
		Named("SURFACING", Seq(
			NewGroup(Named("Shaders", surfacingGroup)),
			NewGroup(Named("Textures", surfacingGroup)),
		)),
		Named("VFX", Seq(Dir("Cached"), Dir("SHOTS"))),
		Named("RnD", Seq(Dir("C++"), Dir("Python"))),
	)
}
