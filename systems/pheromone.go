package systems

// snapEpsilon is the intensity below which evaporated cells snap to exactly
// zero, preventing indefinite tiny residues.
const snapEpsilon = 0.001

// Field is a dense 2-D grid of scent intensities in [0,1]. Three independent
// instances back the colony's communication: home-trail, food-trail, and the
// short-lived nest signal. Decaying shared fields are the agents' only
// communication channel, so evaporation is time-scaled: changing simulation
// speed changes decay proportionally to movement.
type Field struct {
	Cols, Rows int
	CellSize   float32
	Values     []float32 // row-major, Cols*Rows
}

// NewField creates a field covering a worldW x worldH area with square cells
// of the given size. Cell counts round up so the grid covers the whole world.
func NewField(worldW, worldH, cellSize float32) *Field {
	cols := int(worldW / cellSize)
	if float32(cols)*cellSize < worldW {
		cols++
	}
	rows := int(worldH / cellSize)
	if float32(rows)*cellSize < worldH {
		rows++
	}
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	return &Field{
		Cols:     cols,
		Rows:     rows,
		CellSize: cellSize,
		Values:   make([]float32, cols*rows),
	}
}

// cellIndex maps a world coordinate to a grid index, or -1 outside the grid.
func (f *Field) cellIndex(x, y float32) int {
	if x < 0 || y < 0 {
		return -1
	}
	cx := int(x / f.CellSize)
	cy := int(y / f.CellSize)
	if cx >= f.Cols || cy >= f.Rows {
		return -1
	}
	return cy*f.Cols + cx
}

// Deposit adds amount to the cell containing the world point, clamped to 1.
// Points outside the grid are a no-op; agents routinely probe beyond the
// world edge and that must never be an error.
func (f *Field) Deposit(x, y, amount float32) {
	i := f.cellIndex(x, y)
	if i < 0 {
		return
	}
	v := f.Values[i] + amount
	if v > 1 {
		v = 1
	}
	if v < 0 {
		v = 0
	}
	f.Values[i] = v
}

// Evaporate multiplies every cell by max(0, 1-rate*dt) and snaps values
// below the epsilon to exactly 0.
func (f *Field) Evaporate(rate, dt float32) {
	k := 1 - rate*dt
	if k < 0 {
		k = 0
	}
	for i, v := range f.Values {
		v *= k
		if v < snapEpsilon {
			v = 0
		}
		f.Values[i] = v
	}
}

// Sample returns the intensity at the world point, or 0 outside the grid.
func (f *Field) Sample(x, y float32) float32 {
	i := f.cellIndex(x, y)
	if i < 0 {
		return 0
	}
	return f.Values[i]
}

// Total returns the summed intensity over the whole grid, for telemetry.
func (f *Field) Total() float64 {
	var sum float64
	for _, v := range f.Values {
		sum += float64(v)
	}
	return sum
}

// Clear zeroes every cell.
func (f *Field) Clear() {
	for i := range f.Values {
		f.Values[i] = 0
	}
}

// Clone returns a deep copy, used for read-only snapshots.
func (f *Field) Clone() *Field {
	cp := &Field{
		Cols:     f.Cols,
		Rows:     f.Rows,
		CellSize: f.CellSize,
		Values:   make([]float32, len(f.Values)),
	}
	copy(cp.Values, f.Values)
	return cp
}
