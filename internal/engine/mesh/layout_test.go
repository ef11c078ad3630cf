package mesh

import "testing"

func TestPositionUVLayout(t *testing.T) {
	if got := PositionUV.Floats(); got != 5 {
		t.Errorf("Floats() = %d, want 5", got)
	}
	if got := PositionUV.Stride(); got != 20 {
		t.Errorf("Stride() = %d, want 20", got)
	}
	if got := PositionUV.Offset(0); got != 0 {
		t.Errorf("position offset = %d, want 0", got)
	}
	if got := PositionUV.Offset(1); got != 12 {
		t.Errorf("uv offset = %d, want 12", got)
	}
	if PositionUV[0].Location != 0 || PositionUV[1].Location != 1 {
		t.Errorf("unexpected attribute locations %+v", PositionUV)
	}
}

func TestQuadVertexCount(t *testing.T) {
	if got := PositionUV.VertexCount(Quad); got != 6 {
		t.Errorf("quad has %d vertices, want 6", got)
	}
}

func TestQuadTexCoordsInRange(t *testing.T) {
	for i := 0; i < len(Quad); i += 5 {
		u, v := Quad[i+3], Quad[i+4]
		if u < 0 || u > 1 || v < 0 || v > 1 {
			t.Errorf("vertex %d uv (%v, %v) out of [0, 1]", i/5, u, v)
		}
		if Quad[i+2] != 0 {
			t.Errorf("vertex %d z = %v, want 0", i/5, Quad[i+2])
		}
	}
}

func TestQuadTrianglesCounterClockwise(t *testing.T) {
	for tri := 0; tri < 2; tri++ {
		base := tri * 15
		ax, ay := Quad[base], Quad[base+1]
		bx, by := Quad[base+5], Quad[base+6]
		cx, cy := Quad[base+10], Quad[base+11]
		area := (bx-ax)*(cy-ay) - (by-ay)*(cx-ax)
		if area <= 0 {
			t.Errorf("triangle %d is not counter-clockwise (area %v)", tri, area)
		}
	}
}

func TestVertexCountEmptyLayout(t *testing.T) {
	if got := (Layout{}).VertexCount(Quad); got != 0 {
		t.Errorf("empty layout vertex count = %d, want 0", got)
	}
}
