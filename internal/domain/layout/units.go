package layout

import "shelter-map/internal/domain/kennels"

// Config agrupa las constantes del plano. Todo es overrideable desde el
// archivo de config del servicio; DefaultConfig son los valores del producto.
type Config struct {
	// Escala física→canvas.
	PixelsPerMeter int `toml:"pixels_per_meter"`
	// Piso de tamaño para que un box chico (o sin dimensiones) siga siendo
	// clickeable/droppeable.
	MinBoxPx int `toml:"min_box_px"`

	// Tamaño físico por defecto cuando el kennel no tiene dimensiones cargadas.
	DefaultLengthCm int `toml:"default_length_cm"`
	DefaultWidthCm  int `toml:"default_width_cm"`

	// Grilla del auto-layout.
	GridColumns int `toml:"grid_columns"`
	GridGap     int `toml:"grid_gap"`
	GridMargin  int `toml:"grid_margin"`

	// Canvas mínimo (el real crece con los boxes).
	MinCanvasW int `toml:"min_canvas_w"`
	MinCanvasH int `toml:"min_canvas_h"`

	// Offset del anclaje al expulsar un animal de su kennel: apenas abajo
	// del box, un poco adentrado.
	FreeAnchorDX int `toml:"free_anchor_dx"`
	FreeAnchorDY int `toml:"free_anchor_dy"`
}

func DefaultConfig() Config {
	return Config{
		PixelsPerMeter:  40,
		MinBoxPx:        60,
		DefaultLengthCm: 400,
		DefaultWidthCm:  300,
		GridColumns:     4,
		GridGap:         20,
		GridMargin:      20,
		MinCanvasW:      800,
		MinCanvasH:      600,
		FreeAnchorDX:    20,
		FreeAnchorDY:    10,
	}
}

// ToPixels convierte una dimensión física (cm) a píxeles de canvas,
// con piso en MinBoxPx. No hay casos de error: cm <= 0 se trata como
// "sin dato" y el caller ya aplicó el default físico.
func (c Config) ToPixels(cm int) int {
	px := cm * c.PixelsPerMeter / 100
	if px < c.MinBoxPx {
		return c.MinBoxPx
	}
	return px
}

// BoxSize calcula el tamaño en píxeles de un kennel a partir de sus
// dimensiones físicas, cayendo al tamaño por defecto por eje.
func (c Config) BoxSize(k kennels.Kennel) (w, h int) {
	length := k.LengthCm
	if length <= 0 {
		length = c.DefaultLengthCm
	}
	width := k.WidthCm
	if width <= 0 {
		width = c.DefaultWidthCm
	}
	return c.ToPixels(length), c.ToPixels(width)
}
