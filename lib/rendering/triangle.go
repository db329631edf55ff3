package rendering

import "github.com/go-gl/gl/v4.1-core/gl"

// FullscreenTriangle draws three vertices with no attributes; the vertex
// shader derives the positions from gl_VertexID. Core profile still wants a
// vertex array bound for that.
type FullscreenTriangle struct {
	vao uint32
}

func NewFullscreenTriangle() *FullscreenTriangle {
	t := &FullscreenTriangle{}
	gl.GenVertexArrays(1, &t.vao)
	return t
}

func (t *FullscreenTriangle) Draw() {
	gl.BindVertexArray(t.vao)
	gl.DrawArrays(gl.TRIANGLES, 0, 3)
	gl.BindVertexArray(0)
}

func (t *FullscreenTriangle) Close() {
	if t.vao == 0 {
		return
	}
	gl.DeleteVertexArrays(1, &t.vao)
	t.vao = 0
}
