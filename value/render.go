// Copyright 2024 The ShellVM Authors. All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package value

import (
	"strings"

	"github.com/olekukonko/tablewriter"
)

// RenderHashTable renders a HashTable as an aligned "Name  Value" table,
// the same presentation PowerShell's own console formatter gives a
// Hashtable.
func RenderHashTable(h *HashTable) string {
	var sb strings.Builder
	tbl := tablewriter.NewWriter(&sb)
	tbl.SetHeader([]string{"Name", "Value"})
	tbl.SetAutoFormatHeaders(false)
	tbl.SetBorder(false)
	for _, k := range h.Keys {
		v := h.Vals[strings.ToLower(k)]
		tbl.Append([]string{k, CastToString(v)})
	}
	tbl.Render()
	return strings.TrimRight(sb.String(), "\n")
}
