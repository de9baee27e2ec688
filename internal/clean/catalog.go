package clean

import "github.com/google/uuid"

// Category names and icons of the built-in items.
const (
	TempName   = "Temp"
	SystemName = "System"
	CustomName = "Custom paths"

	RecycleBinName = "Recycle bin"
)

// Catalog is the UI-editable tree of categories and their options. It is
// owned by the caller; the engine only reads snapshots of it.
type Catalog struct {
	Items []CleaningItem
}

// Find returns the option with id and the index of its category.
func (c *Catalog) Find(id uuid.UUID) (*CleanOption, int) {
	for i := range c.Items {
		for j := range c.Items[i].Options {
			if c.Items[i].Options[j].ID == id {
				return &c.Items[i].Options[j], i
			}
		}
	}
	return nil, -1
}

// SetEnabled toggles one option and reports whether it was found.
func (c *Catalog) SetEnabled(id uuid.UUID, enabled bool) bool {
	opt, _ := c.Find(id)
	if opt == nil {
		return false
	}
	opt.Enabled = enabled
	return true
}

// SetCategory sets every option of the item at index i.
func (c *Catalog) SetCategory(i int, enabled bool) {
	if i < 0 || i >= len(c.Items) {
		return
	}
	for j := range c.Items[i].Options {
		c.Items[i].Options[j].Enabled = enabled
	}
}

// Select enables every option of the given kinds and disables the rest.
// With no kinds every option is enabled.
func (c *Catalog) Select(kinds ...ItemKind) {
	want := make(map[ItemKind]bool, len(kinds))
	for _, k := range kinds {
		want[k] = true
	}
	for i := range c.Items {
		c.SetCategory(i, len(kinds) == 0 || want[c.Items[i].Kind])
	}
}

// NeedsCleaning reports whether any category has an enabled option.
func (c *Catalog) NeedsCleaning() bool {
	for _, it := range c.Items {
		if it.NeedsCleaning() {
			return true
		}
	}
	return false
}

// Custom returns the custom paths category, or nil when absent.
func (c *Catalog) Custom() *CleaningItem {
	for i := range c.Items {
		if c.Items[i].Kind == KindCustomPath {
			return &c.Items[i]
		}
	}
	return nil
}

// AddCustom appends opt to the custom paths category, creating it if needed.
func (c *Catalog) AddCustom(opt CleanOption) {
	item := c.Custom()
	if item == nil {
		c.Items = append(c.Items, customItem(nil))
		item = &c.Items[len(c.Items)-1]
	}
	item.Options = append(item.Options, opt)
}

// RemoveOption drops the option with id and reports whether it was found.
func (c *Catalog) RemoveOption(id uuid.UUID) bool {
	_, i := c.Find(id)
	if i < 0 {
		return false
	}
	opts := c.Items[i].Options
	for j := range opts {
		if opts[j].ID == id {
			c.Items[i].Options = append(opts[:j:j], opts[j+1:]...)
			return true
		}
	}
	return false
}

// snapshot deep-copies the categories that need cleaning.
func (c *Catalog) snapshot() []CleaningItem {
	var out []CleaningItem
	for _, it := range c.Items {
		if it.NeedsCleaning() {
			out = append(out, it.clone())
		}
	}
	return out
}

func customItem(opts []CleanOption) CleaningItem {
	return CleaningItem{Name: CustomName, Kind: KindCustomPath, Icon: "folder", Options: opts}
}
