/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package storage

import (
	"os"
	"strings"
	"testing"
)

func TestManifestConformsToSchema(t *testing.T) {
	root := t.TempDir()
	ph, err := InitProject(root, minimalProject())
	if err != nil {
		t.Fatalf("InitProject error: %v", err)
	}
	data, err := os.ReadFile(ph.ManifestPath)
	if err != nil {
		t.Fatalf("read manifest: %v", err)
	}
	if err := ValidateManifest(data); err != nil {
		t.Fatalf("written manifest must validate: %v", err)
	}
}

func TestValidateManifestRejectsBadAnchorPoint(t *testing.T) {
	bad := `{
		"name": "x",
		"stage": {"width": 0.8, "height": 0.6},
		"frames": [{
			"id": "f1", "name": "A", "kind": "BUTTON",
			"x": 0, "y": 0, "width": 0.1, "height": 0.1,
			"anchors": [{"point": 9, "x": 0, "y": 0}],
			"visible": true
		}]
	}`
	err := ValidateManifest([]byte(bad))
	if err == nil {
		t.Fatalf("anchor point 9 must be rejected")
	}
	if !strings.Contains(err.Error(), "anchors") {
		t.Fatalf("error should point at the anchors field: %v", err)
	}
}

func TestValidateManifestRejectsMissingStage(t *testing.T) {
	if err := ValidateManifest([]byte(`{"name":"x","frames":[]}`)); err == nil {
		t.Fatalf("missing stage must be rejected")
	}
}
