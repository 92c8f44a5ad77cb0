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


package core

import (
	"fmt"
	"strings"
)

// ValidateSize checks a file's size against the configured maximum.
// The returned error wraps ErrSizeExceeded and names both the file and
// the limit.
func ValidateSize(name string, size, maxSize int64) error {
	if size > maxSize {
		return fmt.Errorf("%w: %s is larger than the %d byte limit", ErrSizeExceeded, name, maxSize)
	}
	return nil
}

// ValidateType checks a file's extension against the accepted list.
//
// Matching is exact-extension and case-insensitive: the substring after
// the name's final dot is compared against each accepted item, with a
// leading dot on the item tolerated. A multi-part item such as "tar.gz"
// therefore never matches; suffix matching is deliberately not supported.
// An empty accepted list allows every type.
func ValidateType(name string, accepted []string) error {
	if len(accepted) == 0 {
		return nil
	}

	ext := strings.ToLower(ExtensionOf(name))
	if ext != "" {
		for _, item := range accepted {
			if strings.ToLower(strings.TrimPrefix(item, ".")) == ext {
				return nil
			}
		}
	}

	return fmt.Errorf("%w: %s (accepted: %s)", ErrUnsupportedType, name, strings.Join(accepted, ", "))
}

// ValidateBatch checks that admitting incoming files on top of the
// existing count stays within maxFiles. It is evaluated once, before any
// per-file validation; a failure rejects the whole batch.
func ValidateBatch(existing, incoming, maxFiles int) error {
	if existing+incoming > maxFiles {
		return fmt.Errorf("%w: at most %d files may be attached", ErrBatchTooLarge, maxFiles)
	}
	return nil
}
