// Copyright (C) 2024 Blazelog Authors.
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

package main

import (
	"os"

	"sigs.k8s.io/yaml"
)

// config is logforensics.yaml: the handful of defaults a tool-surface
// host needs that shouldn't be hardcoded per-call.
type config struct {
	DefaultLimit  int    `json:"default_limit"`
	DefaultSortBy string `json:"default_sort_by"`
	LogLevel      string `json:"log_level"`
}

func defaultConfig() config {
	return config{DefaultLimit: 50, DefaultSortBy: "count", LogLevel: "info"}
}

// loadConfig reads logforensics.yaml if present; a missing file is not
// an error, since every field has a usable default.
func loadConfig(path string) (config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
