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

import "errors"

// Ingestion error taxonomy. All are recoverable at the entry or batch
// boundary; none are fatal to the process.
var (
	// ErrSizeExceeded indicates a file is larger than the configured limit.
	ErrSizeExceeded = errors.New("file exceeds maximum size")

	// ErrUnsupportedType indicates a file's extension is not in the
	// accepted-type list.
	ErrUnsupportedType = errors.New("unsupported file type")

	// ErrBatchTooLarge indicates a submission would push the total file
	// count past the configured maximum.
	ErrBatchTooLarge = errors.New("too many files")

	// ErrReadFailure indicates an admitted entry's content could not
	// be read.
	ErrReadFailure = errors.New("failed to read file")
)
