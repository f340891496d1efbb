package geometry

// TexCoord is a 2D texture coordinate pair. The loader parses and carries
// these; the shading stage does not consume them yet.
type TexCoord struct {
	U, V float64
}
