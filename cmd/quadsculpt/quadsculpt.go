// Copyright (c) 2026, The Quadsculpt Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command quadsculpt builds quad meshes from recipes and built-in
// shapes, and serves live previews of them.
package main

import (
	"cogentcore.org/core/cli"
	"github.com/quadsculpt/quadsculpt/config"
)

func main() {
	opts := cli.DefaultOptions("quadsculpt", "Quadsculpt builds quad meshes from recipes and built-in shapes.")
	opts.DefaultFiles = []string{"quadsculpt.toml"}
	cli.Run(opts, &config.Config{},
		&cli.Cmd[*config.Config]{Func: Build, Name: "build", Root: true,
			Doc: "Build builds every input and writes the meshes to the output directory."},
		&cli.Cmd[*config.Config]{Func: Shapes, Name: "shapes",
			Doc: "Shapes lists the built-in shapes and recipe op kinds."},
		&cli.Cmd[*config.Config]{Func: Stats, Name: "stats",
			Doc: "Stats builds every input and prints a summary of each mesh."},
		&cli.Cmd[*config.Config]{Func: Watch, Name: "watch",
			Doc: "Watch rebuilds recipe files whenever they change."},
		&cli.Cmd[*config.Config]{Func: Serve, Name: "serve",
			Doc: "Serve streams the inputs to WebSocket viewers, rebuilding them on change."},
	)
}
