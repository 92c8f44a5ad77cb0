// Copyright 2025 Poiesic Systems
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


package ingestion

import (
	"context"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"io"
	"strings"

	"github.com/go-crypt/x/blake2b"
	"github.com/poiesic/filedrop/core"
)

const dataURIMarker = ";base64,"

// loadResult carries the outcome of one content load.
type loadResult struct {
	content  string
	checksum string
	err      error
}

// loadContent reads a descriptor's full content according to the entry's
// kind. Text kind yields the contents verbatim; binary kind yields a
// base64 encoding of the raw bytes. No retries: a single failure is
// terminal for the entry.
//
// A context cancelled before the read starts fails the load; an in-flight
// read is never interrupted.
func loadContent(ctx context.Context, fd core.FileDescriptor, kind core.Kind) loadResult {
	if err := ctx.Err(); err != nil {
		return loadResult{err: fmt.Errorf("%w: %s: %v", core.ErrReadFailure, fd.Name, err)}
	}
	if fd.Open == nil {
		return loadResult{err: fmt.Errorf("%w: %s has no content source", core.ErrReadFailure, fd.Name)}
	}

	rc, err := fd.Open()
	if err != nil {
		return loadResult{err: fmt.Errorf("%w: %s: %v", core.ErrReadFailure, fd.Name, err)}
	}
	defer rc.Close()

	raw, err := io.ReadAll(rc)
	if err != nil {
		return loadResult{err: fmt.Errorf("%w: %s: %v", core.ErrReadFailure, fd.Name, err)}
	}

	content := string(raw)
	if kind == core.KindBinary {
		content = encodeBinary(raw)
	}

	return loadResult{content: content, checksum: checksum(raw)}
}

// encodeBinary returns a binary-safe encoding of raw. Sources that hand
// back a data URI already contain a base64 payload; its header is
// stripped rather than re-encoded.
func encodeBinary(raw []byte) string {
	if s := string(raw); strings.HasPrefix(s, "data:") {
		if i := strings.Index(s, dataURIMarker); i >= 0 {
			return s[i+len(dataURIMarker):]
		}
	}
	return base64.StdEncoding.EncodeToString(raw)
}

// checksum returns the lowercase hex BLAKE2b-256 digest of raw.
func checksum(raw []byte) string {
	h, _ := blake2b.New(32, nil)
	h.Write(raw)
	return hex.EncodeToString(h.Sum(nil))
}
