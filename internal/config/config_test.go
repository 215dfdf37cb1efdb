/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package config

import (
	"os"
	"testing"
)

func TestEnvOverridesExportFormat(t *testing.T) {
	old := os.Getenv(EnvExportFormat)
	_ = os.Setenv(EnvExportFormat, "TS")
	t.Cleanup(func() { _ = os.Setenv(EnvExportFormat, old) })
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if got, want := cfg.Export.Format, "ts"; got != want {
		t.Fatalf("Export.Format = %q, want %q", got, want)
	}
}

func TestEnvOverridesGridStep(t *testing.T) {
	old := os.Getenv(EnvGridStep)
	_ = os.Setenv(EnvGridStep, "0.01")
	t.Cleanup(func() { _ = os.Setenv(EnvGridStep, old) })
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Editor.GridStep != 0.01 {
		t.Fatalf("Editor.GridStep = %v, want 0.01", cfg.Editor.GridStep)
	}
}

func TestMergeIncludesLogging(t *testing.T) {
	dst := Defaults()
	src := Defaults()
	src.Logging.Level = "debug"
	src.Logging.Format = "json"
	src.Logging.Source = true
	src.Logging.File = "C:/tmp/frf.log"
	mergeInto(&dst, &src)
	if dst.Logging.Level != "debug" || dst.Logging.Format != "json" || !dst.Logging.Source || dst.Logging.File != "C:/tmp/frf.log" {
		t.Fatalf("logging fields not merged correctly: %#v", dst.Logging)
	}
}

func TestMergeKeepsDefaultsForZeroValues(t *testing.T) {
	dst := Defaults()
	src := AppConfig{} // empty file config must not clobber defaults
	mergeInto(&dst, &src)
	def := Defaults()
	if dst.Editor.StageWidth != def.Editor.StageWidth || dst.Export.Format != def.Export.Format {
		t.Fatalf("defaults clobbered by empty config: %#v", dst)
	}
}

func TestEnvOverrideFor(t *testing.T) {
	old := os.Getenv(EnvLogLevel)
	_ = os.Setenv(EnvLogLevel, "debug")
	t.Cleanup(func() { _ = os.Setenv(EnvLogLevel, old) })
	name, ok := EnvOverrideFor("logging.level")
	if !ok || name != EnvLogLevel {
		t.Fatalf("EnvOverrideFor(logging.level) = %q, %v", name, ok)
	}
	if _, ok := EnvOverrideFor("unknown.key"); ok {
		t.Fatalf("unexpected override for unknown key")
	}
}

func TestEnvOverridesPrecisionIgnoresBadValue(t *testing.T) {
	old := os.Getenv(EnvExportPrecision)
	_ = os.Setenv(EnvExportPrecision, "not-a-number")
	t.Cleanup(func() { _ = os.Setenv(EnvExportPrecision, old) })
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Export.Precision != Defaults().Export.Precision {
		t.Fatalf("bad env value should be ignored, got %d", cfg.Export.Precision)
	}
}
