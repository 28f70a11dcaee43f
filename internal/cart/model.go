package cart

// Product is the denormalized snapshot of a catalog product captured at
// add-time. It can go stale relative to the catalog; the cart and
// checkout display the snapshot, not a live price.
type Product struct {
	ID       string  `json:"_id"`
	Title    string  `json:"title"`
	Image    string  `json:"image"`
	Price    float64 `json:"price"`
	Category string  `json:"category"`
}

// Line is one product's presence in a cart.
type Line struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

// ItemRef is the wire form of a line used by the mutation endpoints.
type ItemRef struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// Cart holds at most one line per product ID.
type Cart struct {
	Lines []Line
}

// Add increments the existing line for the product or appends a new one.
func (c *Cart) Add(p Product, quantity int) {
	for i := range c.Lines {
		if c.Lines[i].Product.ID == p.ID {
			c.Lines[i].Quantity += quantity
			return
		}
	}
	c.Lines = append(c.Lines, Line{Product: p, Quantity: quantity})
}

// Remove drops the line for the product, if present.
func (c *Cart) Remove(productID string) {
	out := c.Lines[:0]
	for _, l := range c.Lines {
		if l.Product.ID != productID {
			out = append(out, l)
		}
	}
	c.Lines = out
}

// SetQuantity replaces the quantity of an existing line. Unknown
// products are left alone.
func (c *Cart) SetQuantity(productID string, quantity int) {
	for i := range c.Lines {
		if c.Lines[i].Product.ID == productID {
			c.Lines[i].Quantity = quantity
			return
		}
	}
}

// Find returns the line for the product.
func (c Cart) Find(productID string) (Line, bool) {
	for _, l := range c.Lines {
		if l.Product.ID == productID {
			return l, true
		}
	}
	return Line{}, false
}

// Subtotal is the sum of snapshot price times quantity over all lines.
func (c Cart) Subtotal() float64 {
	total := 0.0
	for _, l := range c.Lines {
		total += l.Product.Price * float64(l.Quantity)
	}
	return total
}

// Count is the total number of units across all lines.
func (c Cart) Count() int {
	n := 0
	for _, l := range c.Lines {
		n += l.Quantity
	}
	return n
}

func (c Cart) Empty() bool { return len(c.Lines) == 0 }

// Clone returns a deep copy safe to hand to other goroutines.
func (c Cart) Clone() Cart {
	if c.Lines == nil {
		return Cart{}
	}
	lines := make([]Line, len(c.Lines))
	copy(lines, c.Lines)
	return Cart{Lines: lines}
}

// Refs converts the cart into the wire form used for the bulk merge.
func (c Cart) Refs() []ItemRef {
	refs := make([]ItemRef, 0, len(c.Lines))
	for _, l := range c.Lines {
		refs = append(refs, ItemRef{ProductID: l.Product.ID, Quantity: l.Quantity})
	}
	return refs
}
