package model

// ItemStack is one stack of items inside a container.
type ItemStack struct {
	ItemID   string // short name, e.g. "scrap"
	Amount   int
	Skin     uint64
	Cosmetic bool // fixture attached for looks only, never copied to remains
}

// Container is a fixed-capacity list of item stacks.
type Container struct {
	capacity int
	items    []ItemStack
}

// NewContainer creates an empty container with the given capacity.
func NewContainer(capacity int) *Container {
	if capacity < 0 {
		capacity = 0
	}
	return &Container{
		capacity: capacity,
		items:    make([]ItemStack, 0, capacity),
	}
}

// Capacity returns the number of slots.
func (c *Container) Capacity() int {
	return c.capacity
}

// Len returns the number of occupied slots.
func (c *Container) Len() int {
	return len(c.items)
}

// Full reports whether every slot is occupied.
func (c *Container) Full() bool {
	return len(c.items) >= c.capacity
}

// Add puts a stack into the next free slot. Returns false if the container is full
// or the stack is empty.
func (c *Container) Add(stack ItemStack) bool {
	if stack.Amount <= 0 || c.Full() {
		return false
	}
	c.items = append(c.items, stack)
	return true
}

// Items returns a copy of the stacks.
func (c *Container) Items() []ItemStack {
	out := make([]ItemStack, len(c.items))
	copy(out, c.items)
	return out
}

// Clear removes every stack.
func (c *Container) Clear() {
	c.items = c.items[:0]
}

// CloneWithout returns an independent container of the same capacity holding
// copies of every stack that skip rejects as false.
func (c *Container) CloneWithout(skip func(ItemStack) bool) *Container {
	clone := NewContainer(c.capacity)
	for _, it := range c.items {
		if skip != nil && skip(it) {
			continue
		}
		clone.items = append(clone.items, it)
	}
	return clone
}

// Inventory groups the three containers an agent carries.
type Inventory struct {
	Wear *Container
	Belt *Container
	Main *Container
}

// NewInventory creates empty containers with the given capacities.
func NewInventory(wear, belt, main int) *Inventory {
	return &Inventory{
		Wear: NewContainer(wear),
		Belt: NewContainer(belt),
		Main: NewContainer(main),
	}
}

// Containers returns the containers in wear, belt, main order.
func (inv *Inventory) Containers() []*Container {
	return []*Container{inv.Wear, inv.Belt, inv.Main}
}
