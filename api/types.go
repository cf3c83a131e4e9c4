// Copyright 2025 Shiftcal Software
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

package api

import (
	"github.com/shiftcal/rosterd"
)

// RootResponse is returned by GET /.
type RootResponse struct {
	Service string `json:"service"`
	Version string `json:"version"`
}

// HealthResponse is returned by GET /health.
type HealthResponse struct {
	IsHealthy bool `json:"is_healthy"`
}

// ErrorResponse is the common error body. Error holds the machine-readable
// error kind; Message is the human-readable description.
type ErrorResponse struct {
	StatusCode int    `json:"status_code"`
	Error      string `json:"error"`
	Message    string `json:"message"`
}

// ImportRequest is the body of POST /api/v1/schedule/import. Exactly one of
// FilePath or FileContent must be provided. FileContent carries a
// base64-encoded workbook; decoding happens here so the engine only ever
// sees raw bytes.
type ImportRequest struct {
	FilePath    string `json:"file_path,omitempty"`
	FileContent string `json:"file_content,omitempty"`
}

// SwapRequest is the body of POST /api/v1/schedule/swap.
type SwapRequest struct {
	SwapInfo1 rosterd.SwapIdentifier `json:"swap_info_1"`
	SwapInfo2 rosterd.SwapIdentifier `json:"swap_info_2"`
}
