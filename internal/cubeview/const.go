package cubeview

const (
	DefaultRows     = 8 // rows when a capture carries no explicit resolution
	DefaultRowShift = 8 // low byte of a word is not part of the projection
	DefaultSpacing  = 1.0
	MaxCells        = 1 << 20 // largest rows*columns of an explicit resolution
	NoSlice         = -1

	MsgLoaded       = "JSON file loaded successfully!"
	MsgInvalidFile  = "Error: Invalid JSON file"
	msgSliceToggled = "Slice %d toggled"
)
