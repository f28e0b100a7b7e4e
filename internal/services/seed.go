package services

import (
	"Reelhouse/internal/config"
	"Reelhouse/internal/helpers"
)

// emptyScene is written when no emptySceneFile is configured. Reference
// directives go in at line index 4, after the requires line.
const emptyScene = `//Maya ASCII 2018 scene
//Name: empty.ma
//Codeset: 1252
requires maya "2018";
currentUnit -l centimeter -a degree -t film;
fileInfo "application" "maya";
fileInfo "product" "Maya 2018";
// End of empty.ma
`

// SceneSeed places initial scene files.
type SceneSeed struct {
	Source    string
	Extension string
}

func NewSceneSeed(configuration *config.Configuration) SceneSeed {
	return SceneSeed{
		Source:    configuration.Layout.EmptySceneFile,
		Extension: configuration.Layout.SceneFileExtension,
	}
}

// Place creates dst from the seed unless it already exists.
func (s SceneSeed) Place(dst string) (bool, error) {
	if helpers.FileExists(dst) {
		return false, nil
	}
	if s.Source != "" {
		return helpers.CopyFileIfMissing(s.Source, dst)
	}
	if err := helpers.WriteFileAtomic(dst, []byte(emptyScene), 0o644); err != nil {
		return false, err
	}
	return true, nil
}
