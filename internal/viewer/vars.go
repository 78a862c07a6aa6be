package viewer

const (
	SnapshotOut = "view.png"
	GIFOut      = "gifs/slices.gif"
)

var (
	Debug = false // set to true for debug level logging
	PNG   = false // set to true to save a PNG per slice instead of the GIF
	GIF   = true  // set to false to skip slice export
	TEXT  = false // set to true to print the decoded matrices of the selected frame
)
