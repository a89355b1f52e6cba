// Package version provides build and version information.
package version

// Version is the current application version.
const Version = "0.2.0"

// Milestones:
// 0.2.0 - Headless summary and snapshot modes, env configuration
// 0.1.0 - Initial release: orbiting planets, starfield, orbit camera, hover tooltips
