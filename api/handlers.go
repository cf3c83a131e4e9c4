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
	"encoding/base64"
	"encoding/json"
	"net/http"

	"github.com/shiftcal/rosterd"
)

const apiVersion = "1.0.0"

// writeJSON writes a JSON response with the given status code.
func writeJSON(
	w http.ResponseWriter,
	status int,
	v any,
) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	//nolint:errcheck,errchkjson
	json.NewEncoder(w).Encode(v)
}

// writeEngineError maps an engine error to an HTTP status and writes the
// common error body. The machine-readable kind goes in the error field so
// callers can dispatch without parsing messages.
func writeEngineError(
	w http.ResponseWriter,
	err error,
) {
	kind := rosterd.ErrorKind(err)
	status := http.StatusInternalServerError
	switch kind {
	case "validation":
		status = http.StatusBadRequest
	case "empty_store", "not_found", "name_not_found":
		status = http.StatusNotFound
	case "ambiguous_role":
		status = http.StatusConflict
	}
	writeJSON(w, status, ErrorResponse{
		StatusCode: status,
		Error:      kind,
		Message:    err.Error(),
	})
}

// writeBadRequest writes a validation-kind error for transport-level
// problems (malformed JSON, bad base64).
func writeBadRequest(
	w http.ResponseWriter,
	message string,
) {
	writeJSON(w, http.StatusBadRequest, ErrorResponse{
		StatusCode: http.StatusBadRequest,
		Error:      "validation",
		Message:    message,
	})
}

// handleRoot handles GET / and returns API metadata.
func (a *API) handleRoot(
	w http.ResponseWriter,
	_ *http.Request,
) {
	writeJSON(w, http.StatusOK, RootResponse{
		Service: "rosterd",
		Version: apiVersion,
	})
}

// handleHealth handles GET /health.
func (a *API) handleHealth(
	w http.ResponseWriter,
	_ *http.Request,
) {
	writeJSON(w, http.StatusOK, HealthResponse{
		IsHealthy: true,
	})
}

// handleGetDuty handles GET /api/v1/duty/{date} where date is either an
// explicit YYYY-MM-DD date or the literal "today".
func (a *API) handleGetDuty(
	w http.ResponseWriter,
	r *http.Request,
) {
	result, err := a.service.GetDuty(r.PathValue("date"))
	if err != nil {
		a.logger.Error(
			"duty query failed",
			"error", err,
		)
		writeEngineError(w, err)
		return
	}
	status := http.StatusOK
	if !result.Found {
		status = http.StatusNotFound
	}
	writeJSON(w, status, result)
}

// handleImport handles POST /api/v1/schedule/import. The body names either
// a server-side file path or carries base64 workbook content.
func (a *API) handleImport(
	w http.ResponseWriter,
	r *http.Request,
) {
	var req ImportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid JSON body: "+err.Error())
		return
	}
	if (req.FilePath == "") == (req.FileContent == "") {
		writeBadRequest(
			w,
			"exactly one of file_path or file_content must be provided",
		)
		return
	}

	var report *rosterd.ImportReport
	var err error
	if req.FileContent != "" {
		var decoded []byte
		decoded, err = base64.StdEncoding.DecodeString(req.FileContent)
		if err != nil {
			writeBadRequest(w, "file_content is not valid base64: "+err.Error())
			return
		}
		report, err = a.service.ImportFromBytes(decoded)
	} else {
		report, err = a.service.ImportFromPath(req.FilePath)
	}
	if err != nil {
		a.logger.Error(
			"roster import failed",
			"error", err,
		)
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// handleSwap handles POST /api/v1/schedule/swap.
func (a *API) handleSwap(
	w http.ResponseWriter,
	r *http.Request,
) {
	var req SwapRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid JSON body: "+err.Error())
		return
	}
	result, err := a.service.SwapByName(req.SwapInfo1, req.SwapInfo2)
	if err != nil {
		a.logger.Error(
			"duty swap failed",
			"error", err,
		)
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// handleSwapLogs handles GET /api/v1/swaplogs.
func (a *API) handleSwapLogs(
	w http.ResponseWriter,
	_ *http.Request,
) {
	report, err := a.service.SwapLogs()
	if err != nil {
		a.logger.Error(
			"swap log query failed",
			"error", err,
		)
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}
