// Package assets embeds the images shipped with the viewer.
package assets

import "embed"

const (
	OpenHandCursor    = "open_hand_cursor.png"
	GrabbedHandCursor = "grabbed_hand_cursor.png"
)

//go:embed *.png
var FS embed.FS
