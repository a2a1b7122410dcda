/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"gowhiteboard/internal/config"
	"gowhiteboard/internal/crash"
	applog "gowhiteboard/internal/log"
	"gowhiteboard/internal/ui"
	"gowhiteboard/internal/version"
)

func usage() {
	fmt.Println("Go Whiteboard")
	fmt.Printf("Version: %s\n", version.String())
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  gowhiteboard version|-v|--version   Show version")
	fmt.Println("  gowhiteboard ui [<config.yaml>]     Launch desktop UI (build with -tags fyne for full UI)")
	fmt.Println("  gowhiteboard demo <out.png>         Script a short session and export it as PNG")
	fmt.Println("  gowhiteboard pdf <out.pdf>          Same as demo, exported as vector PDF")
	fmt.Println("  gowhiteboard config                 Print the effective configuration")
	fmt.Println()
	fmt.Printf("Settings are read from $%s or the per-user config directory, then %s_* variables.\n", config.EnvConfigPath, config.EnvPrefix)
}

func main() {
	args := os.Args
	if len(args) < 2 {
		usage()
		return
	}
	switch args[1] {
	case "version", "--version", "-v":
		fmt.Println("Go Whiteboard")
		fmt.Println(version.String())
		return
	case "ui":
		// the UI loads its own config so a path argument can replace the default
		var path string
		if len(args) >= 3 {
			path = args[2]
		}
		if err := ui.Run(path); err != nil {
			fmt.Println("Error:", err)
			os.Exit(1)
		}
		return
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error:", err)
		os.Exit(1)
	}
	applog.Init(cfg.Logging.LogOptions())
	l := applog.WithComponent("cli")
	defer crash.Recover(&crash.Context{})
	l.Debug("start", slog.Int("args", len(args)))

	switch args[1] {
	case "demo", "pdf":
		if len(args) < 3 {
			fmt.Printf("%s requires <out>\n", args[1])
			usage()
			os.Exit(2)
		}
		out, _ := filepath.Abs(args[2])
		if args[1] == "pdf" && !strings.EqualFold(filepath.Ext(out), ".pdf") {
			out += ".pdf"
		}
		if err := runDemo(cfg, out, l); err != nil {
			l.Error("demo failed", slog.Any("err", err))
			fmt.Println("Error:", err)
			os.Exit(1)
		}
		fmt.Println("Wrote", out)
	case "config":
		if err := printConfig(os.Stdout, cfg); err != nil {
			fmt.Println("Error:", err)
			os.Exit(1)
		}
	default:
		usage()
		os.Exit(2)
	}
}

// printConfig writes cfg as YAML, preceded by the environment variables that changed it.
func printConfig(w io.Writer, cfg config.AppConfig) error {
	if p, err := config.ConfigPath(); err == nil {
		fmt.Fprintf(w, "# file: %s\n", p)
	}
	for _, key := range config.OverriddenKeys() {
		name, _ := config.EnvOverrideFor(key)
		fmt.Fprintf(w, "# %s set by %s\n", key, name)
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return enc.Close()
}
