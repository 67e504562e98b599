// Command slab creates slab layout snapshots, reports their areas and
// exports them to DXF, SVG, PNG, PDF and STL.
package main

import "github.com/soypat/slab/cmd/slab/cmd"

func main() {
	cmd.Execute()
}
