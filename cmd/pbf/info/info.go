// Copyright 2017-25 the original author or authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package info implements "pbf info": print a PBF file's header, optionally
// scanning the whole file for entity counts.
package info

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	humanize "github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/DavidKarlas/libosmium/cmd/pbf/cli"
	"github.com/DavidKarlas/libosmium/model"
	"github.com/DavidKarlas/libosmium/pbf"
)

// out is a package variable so tests can redirect it without touching
// stdout.
var out io.Writer = os.Stdout

type extendedHeader struct {
	model.Header

	NodeCount     int64
	WayCount      int64
	RelationCount int64
}

func init() {
	cli.RootCmd.AddCommand(infoCmd)

	flags := infoCmd.Flags()
	flags.BoolP("json", "j", false, "format information as JSON")
	flags.IntP("cpu", "c", pbf.DefaultNCpu(), "number of CPUs to use for scanning")
	flags.BoolP("extended", "e", false, "provide extended information (scans entire file)")
}

var infoCmd = &cobra.Command{
	Use:   "info [<OSM PBF file>]",
	Short: "Print information about an OSM PBF file",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		var f *os.File

		if len(args) == 1 {
			opened, err := os.Open(args[0])
			if err != nil {
				cli.Fatal(err)
			}

			f = opened
		} else {
			f = os.Stdin
		}

		in, err := cli.WrapInputFile(f)
		if err != nil {
			cli.Fatal(err)
		}

		flags := cmd.Flags()

		ncpu, err := flags.GetInt("cpu")
		if err != nil {
			cli.Fatal(err)
		}

		extended, err := flags.GetBool("extended")
		if err != nil {
			cli.Fatal(err)
		}

		eh, err := runInfo(in, ncpu, extended)
		if err != nil {
			cli.Fatal(err)
		}

		if err := in.Close(); err != nil {
			cli.Fatal(err)
		}

		jsonfmt, err := flags.GetBool("json")
		if err != nil {
			cli.Fatal(err)
		}

		if jsonfmt {
			renderJSON(eh, extended)
		} else {
			renderTxt(eh, extended)
		}
	},
}

// runInfo opens in as a PBF stream and, if extended, scans every data Blob
// to total entity counts.
func runInfo(in io.Reader, ncpu int, extended bool) (*extendedHeader, error) {
	d, err := pbf.Open(in, pbf.WithNCpus(ncpu))
	if err != nil {
		return nil, err
	}

	defer d.Close()

	eh := &extendedHeader{Header: d.Header()}
	if !extended {
		return eh, nil
	}

	for {
		buf, err := d.Read()
		if err != nil {
			return nil, err
		}

		if buf.CommittedSize() == 0 {
			break
		}

		for range buf.Nodes(false) {
			eh.NodeCount++
		}

		for range buf.Ways(false) {
			eh.WayCount++
		}

		for range buf.Relations(false) {
			eh.RelationCount++
		}
	}

	return eh, nil
}

func renderJSON(eh *extendedHeader, extended bool) {
	var v any = eh.Header
	if extended {
		v = eh
	}

	b, err := json.Marshal(v)
	if err != nil {
		cli.Fatal(err)
	}

	fmt.Fprintln(out, string(b))
}

func renderTxt(eh *extendedHeader, extended bool) {
	var boxes []string
	for _, b := range eh.BoundingBoxes {
		boxes = append(boxes, b.String())
	}

	fmt.Fprintf(out, "Generator: %s\n", eh.Generator)
	fmt.Fprintf(out, "HasDenseNodes: %t\n", eh.HasDenseNodes)
	fmt.Fprintf(out, "MultipleObjectVersions: %t\n", eh.MultipleObjectVersions)
	fmt.Fprintf(out, "BoundingBoxes: %s\n", strings.Join(boxes, ", "))
	fmt.Fprintf(out, "RequiredFeatures: %s\n", strings.Join(eh.RequiredFeatures, ", "))
	fmt.Fprintf(out, "OptionalFeatures: %s\n", strings.Join(eh.OptionalFeatures, ", "))

	keys := make([]string, 0, len(eh.Attributes))
	for k := range eh.Attributes {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	for _, k := range keys {
		fmt.Fprintf(out, "%s: %s\n", k, eh.Attributes[k])
	}

	if extended {
		fmt.Fprintf(out, "NodeCount: %s\n", humanize.Comma(eh.NodeCount))
		fmt.Fprintf(out, "WayCount: %s\n", humanize.Comma(eh.WayCount))
		fmt.Fprintf(out, "RelationCount: %s\n", humanize.Comma(eh.RelationCount))
	}
}
