// Package wherewasi saves the transform of tagged entities when the app
// closes and restores it the next time the app starts, so a debug camera
// comes back where it was left.
//
// Tag an entity with a name and add the plugin:
//
//	app := ecs.NewApp()
//	app.AddPlugins(&wherewasi.Plugin{Directory: "./assets/saves"})
//	app.Spawn(wherewasi.Camera(), transform.FromXYZ(10, 10, 10))
//
// Each name maps to one file in the save directory. A missing file leaves the
// spawned transform untouched.
package wherewasi
