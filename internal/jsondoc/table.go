package jsondoc

import "strconv"

// Table is a flat projection of a value
type Table struct {
	Columns []string
	Rows    [][]string
}

// ToTable projects v, found at path, onto rows and columns.
//
// An array whose items are all objects becomes one row per item with the
// union of keys as columns, in first-seen order. Any other array lists
// index, value and type. An object lists key, value and path. A scalar is a
// single row.
func ToTable(v *Value, path string) Table {
	switch Classify(v) {
	case KindArray:
		if objectItems(v) {
			return objectArrayTable(v)
		}
		t := Table{Columns: []string{"#", "value", "type"}}
		for i, item := range v.Items() {
			t.Rows = append(t.Rows, []string{strconv.Itoa(i), cellText(item), Classify(item).String()})
		}
		return t
	case KindObject:
		t := Table{Columns: []string{"key", "value", "path"}}
		for _, f := range v.Fields() {
			t.Rows = append(t.Rows, []string{f.Key, cellText(f.Value), ChildPath(path, f.Key, KindObject)})
		}
		return t
	default:
		return Table{
			Columns: []string{"value", "type"},
			Rows:    [][]string{{cellText(v), Classify(v).String()}},
		}
	}
}

func objectItems(v *Value) bool {
	items := v.Items()
	if len(items) == 0 {
		return false
	}
	for _, item := range items {
		if Classify(item) != KindObject {
			return false
		}
	}
	return true
}

func objectArrayTable(v *Value) Table {
	index := map[string]int{}
	columns := []string{"#"}
	for _, item := range v.Items() {
		for _, f := range item.Fields() {
			if _, ok := index[f.Key]; !ok {
				index[f.Key] = len(columns)
				columns = append(columns, f.Key)
			}
		}
	}

	t := Table{Columns: columns}
	for i, item := range v.Items() {
		row := make([]string, len(columns))
		row[0] = strconv.Itoa(i)
		for _, f := range item.Fields() {
			row[index[f.Key]] = cellText(f.Value)
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

// cellText renders scalars as shown in the graph and containers compactly
func cellText(v *Value) string {
	if Classify(v).Expandable() {
		return Compact(v)
	}
	return ScalarString(v)
}
