package main

import (
	"time"

	"terrawatch/models"
	"terrawatch/render"
)

// Request/response DTOs. Keep them minimal and explicit.

type analysisReq struct {
	Zone    string `json:"zone"`
	From    string `json:"from,omitempty"` // YYYY-MM-DD, default 2020-01-01
	To      string `json:"to,omitempty"`   // YYYY-MM-DD, default 2024-01-01
	Trigger bool   `json:"trigger"`
}

type analysisResp struct {
	Zone        models.Zone            `json:"zone"`
	Period      periodResp             `json:"period"`
	State       models.AnalysisState   `json:"state"`
	Report      *models.AnalysisReport `json:"report,omitempty"`
	Frame       render.Frame           `json:"frame"`
	ExportToken string                 `json:"exportToken,omitempty"`
	Downloads   map[string]string      `json:"downloads,omitempty"` // format -> URL
}

type periodResp struct {
	From     string `json:"from"`
	To       string `json:"to"`
	Inverted bool   `json:"inverted,omitempty"`
}

type runResp struct {
	ID        string    `json:"id"`
	Zone      string    `json:"zone"`
	From      string    `json:"from"`
	To        string    `json:"to"`
	Renderer  string    `json:"renderer"`
	Generator string    `json:"generator"`
	CreatedAt time.Time `json:"createdAt"`
	Age       string    `json:"age"` // e.g. "3 minutes ago"
}
