package layout

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// SceneShotMap maps a scene number to its shot count.
type SceneShotMap map[int]int

// Scenes returns the scene numbers in ascending order.
func (m SceneShotMap) Scenes() []int {
	scenes := make([]int, 0, len(m))
	for scene := range m {
		scenes = append(scenes, scene)
	}
	sort.Ints(scenes)
	return scenes
}

// Merge returns a new map holding m plus other, keeping the larger shot count
// per scene. Shot counts below one in other are ignored; nothing shrinks.
func (m SceneShotMap) Merge(other SceneShotMap) SceneShotMap {
	merged := make(SceneShotMap, len(m)+len(other))
	for scene, shots := range m {
		merged[scene] = shots
	}
	for scene, shots := range other {
		if shots < 1 {
			if _, ok := merged[scene]; !ok {
				merged[scene] = 0
			}
			continue
		}
		if shots > merged[scene] {
			merged[scene] = shots
		}
	}
	return merged
}

// TotalShots sums the positive shot counts.
func (m SceneShotMap) TotalShots() int {
	total := 0
	for _, shots := range m {
		if shots > 0 {
			total += shots
		}
	}
	return total
}

// ParseSceneShotMap zips two whitespace-separated integer lists, scene numbers
// and shot counts, pairwise: ("1 2", "10 4") -> {1:10, 2:4}.
func ParseSceneShotMap(scenes string, shots string) (SceneShotMap, error) {
	sceneNumbers, err := parseIntList(scenes)
	if err != nil {
		return nil, fmt.Errorf("scene numbers: %w", err)
	}
	shotCounts, err := parseIntList(shots)
	if err != nil {
		return nil, fmt.Errorf("shot counts: %w", err)
	}
	if len(sceneNumbers) != len(shotCounts) {
		return nil, fmt.Errorf("got %d scene numbers but %d shot counts", len(sceneNumbers), len(shotCounts))
	}
	plan := make(SceneShotMap, len(sceneNumbers))
	for i, scene := range sceneNumbers {
		if scene < 1 {
			return nil, fmt.Errorf("scene number %d must be positive", scene)
		}
		plan[scene] = shotCounts[i]
	}
	return plan, nil
}

func parseIntList(input string) ([]int, error) {
	fields := strings.Fields(input)
	values := make([]int, 0, len(fields))
	for _, field := range fields {
		value, err := strconv.Atoi(field)
		if err != nil {
			return nil, errors.New("expected space separated integers")
		}
		values = append(values, value)
	}
	return values, nil
}

// SceneName and ShotName build the numbered folder names.
func SceneName(prefix string, scene int) string {
	return prefix + strconv.Itoa(scene)
}

func ShotName(prefix string, shot int) string {
	return prefix + strconv.Itoa(shot)
}

// parseNumbered returns the integer following prefix in name.
func parseNumbered(prefix string, name string) (int, bool) {
	if !strings.HasPrefix(name, prefix) {
		return 0, false
	}
	n, err := strconv.Atoi(name[len(prefix):])
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}
