package layout

import "shelter-map/internal/domain/kennels"

// DefaultPosition resuelve la geometría efectiva de un kennel.
// La posición persistida siempre gana; si no hay, se asigna un slot en una
// grilla de columnas fijas según el índice estable de la lista del backend
// (orden de creación). Determinístico y sin solapes para cualquier N.
//
// El paso de la grilla usa el tamaño por defecto como slot, así el layout
// inicial no depende de las dimensiones de cada kennel.
func (c Config) DefaultPosition(k kennels.Kennel, index int) BoxGeometry {
	if k.HasStoredGeometry() {
		return BoxGeometry{X: k.MapX, Y: k.MapY, W: k.MapW, H: k.MapH}
	}

	w, h := c.BoxSize(k)

	slotW := c.ToPixels(c.DefaultLengthCm)
	slotH := c.ToPixels(c.DefaultWidthCm)

	col := index % c.GridColumns
	row := index / c.GridColumns

	return BoxGeometry{
		X: c.GridMargin + col*(slotW+c.GridGap),
		Y: c.GridMargin + row*(slotH+c.GridGap),
		W: w,
		H: h,
	}
}
