package wherewasi

import "github.com/plus3/wherewasi/transform"

// CameraName is the name used by Camera.
const CameraName = "camera"

// WhereWasI tags an entity whose transform is saved on exit and restored on
// startup. Name selects the save file, so it must be unique per entity.
//
// An entity spawned without a transform.Transform gets transform.Identity.
type WhereWasI struct {
	Name string
}

// FromName tags an entity with name.
func FromName(name string) WhereWasI {
	return WhereWasI{Name: name}
}

// Camera is FromName(CameraName).
func Camera() WhereWasI {
	return FromName(CameraName)
}

func (WhereWasI) RequiredComponents() []any {
	return []any{transform.Identity()}
}

// Tracked is the query shape shared by the plugin's systems.
type Tracked struct {
	*WhereWasI
	*transform.Transform
}

// SaveRequest asks the plugin to save every tracked transform now.
type SaveRequest struct{}

// LoadRequest asks the plugin to re-apply every saved transform now.
type LoadRequest struct{}
