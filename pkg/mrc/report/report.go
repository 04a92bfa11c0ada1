// Copyright 2026 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package report renders a training save blob for humans.
package report

import (
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/fatih/camelcase"
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/jmpoep/BP-Mehlow-Server-sub002/pkg/mrc"
	"github.com/jmpoep/BP-Mehlow-Server-sub002/pkg/mrc/spd"
	"github.com/jmpoep/BP-Mehlow-Server-sub002/pkg/mrc/variant"
)

// Field is one scalar of the save data.
type Field struct {
	Label string
	Value string
}

// Label turns a Go field name into words, "MeStolenSize" becomes
// "Me Stolen Size".
func Label(name string) string {
	return strings.Join(camelcase.Split(name), " ")
}

// Scalars lists every scalar field of the save data in wire order. Arrays and
// nested structures are left to the dedicated tables.
func Scalars(d *mrc.SaveData) []Field {
	var fields []Field
	v := reflect.ValueOf(d).Elem()
	t := v.Type()
	for idx := 0; idx < t.NumField(); idx++ {
		f := v.Field(idx)
		switch f.Kind() {
		case reflect.Array, reflect.Struct:
			continue
		}
		var value string
		switch x := f.Interface().(type) {
		case fmt.Stringer:
			value = x.String()
		case uint32:
			value = fmt.Sprintf("%#x", x)
		default:
			value = fmt.Sprintf("%v", x)
		}
		fields = append(fields, Field{Label: Label(t.Field(idx).Name), Value: value})
	}
	return fields
}

// Render writes the blob as a set of tables. If v is not nil the register
// sections are accounted against its tables.
func Render(w io.Writer, blob *mrc.SaveBlob, v *variant.Variant) {
	d := &blob.Data

	h := table.NewWriter()
	h.SetOutputMirror(w)
	h.SetTitle("MRC training data")
	h.AppendHeader(table.Row{"CRC", "Size", "Version", "Capability ID"})
	h.AppendRow(table.Row{
		fmt.Sprintf("%#08x", blob.Header.Crc),
		humanize.IBytes(uint64(d.Size)),
		d.Version,
		fmt.Sprintf("%#08x %#08x %#08x", d.CapabilityID[0], d.CapabilityID[1], d.CapabilityID[2]),
	})
	h.Render()

	s := table.NewWriter()
	s.SetOutputMirror(w)
	s.SetTitle("Scalars")
	s.AppendHeader(table.Row{"Field", "Value"})
	for _, f := range Scalars(d) {
		s.AppendRow(table.Row{f.Label, f.Value})
	}
	for idx, vdd := range d.VddVoltage {
		s.AppendRow(table.Row{fmt.Sprintf("Vdd %s", mrc.Profile(idx)), fmt.Sprintf("%d mV", vdd)})
	}
	for idx, addr := range d.BerAddress {
		s.AppendRow(table.Row{fmt.Sprintf("BER Address %d", idx), fmt.Sprintf("%#x", addr)})
	}
	s.Render()

	c := table.NewWriter()
	c.SetOutputMirror(w)
	c.SetTitle("Channels")
	c.AppendHeader(table.Row{"Channel", "Status", "DIMMs", "Rank Mask", "SubCh Mask", "Byte Mask", "tCK (fs)", "tCL"})
	for mc := range d.Controller {
		for ch := range d.Controller[mc].Channel {
			chSave := &d.Controller[mc].Channel[ch]
			std := chSave.Timing[mrc.ProfileStd]
			c.AppendRow(table.Row{
				fmt.Sprintf("mc%d/ch%d", mc, ch),
				chSave.Status,
				chSave.DimmCount,
				fmt.Sprintf("%#x", chSave.ValidRankBitMask),
				fmt.Sprintf("%#x", chSave.ValidSubChBitMask),
				fmt.Sprintf("%#x", chSave.ValidByteMask),
				std.TCK,
				std.TCL,
			})
		}
	}
	c.Render()

	m := table.NewWriter()
	m.SetOutputMirror(w)
	m.SetTitle("DIMMs")
	m.AppendHeader(table.Row{"Slot", "Status", "SPD CRC", "DRAM Type"})
	for mc := range d.Controller {
		for ch := range d.Controller[mc].Channel {
			for dimm, dimmSave := range d.Controller[mc].Channel[ch].Dimm {
				m.AppendRow(table.Row{
					fmt.Sprintf("mc%d/ch%d/d%d", mc, ch, dimm),
					dimmSave.Status,
					fmt.Sprintf("%#04x", dimmSave.Crc),
					spd.DramType(dimmSave.SpdSave[spd.OffsetDramType]),
				})
			}
		}
	}
	m.Render()

	r := table.NewWriter()
	r.SetOutputMirror(w)
	r.SetTitle("Register sections")
	r.AppendHeader(table.Row{"Section", "Used", "Capacity"})
	commonUsed, saGvUsed := "?", "?"
	if v != nil {
		commonUsed = humanize.IBytes(uint64(v.Tables.CommonBytes(v.Geometry)))
		saGvUsed = humanize.IBytes(uint64(v.Tables.SaGvBytes(v.Geometry)))
	}
	r.AppendRow(table.Row{"Common", commonUsed, humanize.IBytes(mrc.MaxCommonRegisterBytes)})
	for point := mrc.SaGvPointLow; point <= mrc.SaGvPointHigh; point++ {
		used := saGvUsed
		if isZero(d.RegisterSaGv[point][:]) {
			used = "empty"
		}
		r.AppendRow(table.Row{fmt.Sprintf("SA-GV %s", point), used, humanize.IBytes(mrc.MaxSaGvRegisterBytes)})
	}
	r.Render()
}

func isZero(b []byte) bool {
	for _, x := range b {
		if x != 0 {
			return false
		}
	}
	return true
}
