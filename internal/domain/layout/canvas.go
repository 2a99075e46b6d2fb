package layout

// CanvasBounds deriva el tamaño scrolleable del canvas como la unión de
// todos los boxes más un gap, con piso en el canvas mínimo. Se recalcula
// ante cualquier cambio de geometría (incluidas las efímeras del
// auto-layout) para que ningún box quede recortado.
func (c Config) CanvasBounds(boxes []BoxGeometry) Size {
	s := Size{Width: c.MinCanvasW, Height: c.MinCanvasH}

	for _, b := range boxes {
		if right := b.X + b.W + c.GridGap; right > s.Width {
			s.Width = right
		}
		if bottom := b.Y + b.H + c.GridGap; bottom > s.Height {
			s.Height = bottom
		}
	}

	return s
}
