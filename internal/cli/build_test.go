package cli

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/crest-tools/crest/pkg/digraph"
)

// testMeshJSON is a single triangle with ascending scalar values: the Reeb
// graph is one arc between two critical points.
const testMeshJSON = `{
  "kind": "surface",
  "vertices": 3,
  "cells": [[0, 1, 2]],
  "fields": [{"name": "height", "values": [0.0, 1.0, 2.0]}]
}`

func testLogger() *log.Logger {
	return newLogger(io.Discard, log.ErrorLevel)
}

func nullCacheConfig() Config {
	cfg := defaultConfig()
	cfg.Cache.Backend = "null"
	return cfg
}

func TestRunBuild_EndToEnd(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "mesh.json")
	output := filepath.Join(dir, "graph.json")
	if err := os.WriteFile(input, []byte(testMeshJSON), 0644); err != nil {
		t.Fatal(err)
	}

	c := &CLI{Logger: testLogger()}
	err := c.runBuild(context.Background(), nullCacheConfig(), buildOptions{
		input:     input,
		output:    output,
		fieldName: "height",
		noCache:   true,
	})
	if err != nil {
		t.Fatalf("runBuild() failed: %v", err)
	}

	g, err := digraph.ReadFile(output)
	if err != nil {
		t.Fatalf("ReadFile(output) failed: %v", err)
	}
	if g.NodeCount() != 2 || g.ArcCount() != 1 {
		t.Errorf("graph = %d nodes, %d arcs, want 2, 1", g.NodeCount(), g.ArcCount())
	}
}

func TestComputeGraph_CacheHit(t *testing.T) {
	cfg := defaultConfig()
	cfg.Cache.Dir = t.TempDir()

	opts := buildOptions{fieldName: "height"}
	ctx := context.Background()

	first, err := computeGraph(ctx, testLogger(), cfg, []byte(testMeshJSON), opts)
	if err != nil {
		t.Fatalf("computeGraph() failed: %v", err)
	}
	second, err := computeGraph(ctx, testLogger(), cfg, []byte(testMeshJSON), opts)
	if err != nil {
		t.Fatalf("computeGraph() (cached) failed: %v", err)
	}
	if string(first) != string(second) {
		t.Error("cached result differs from computed result")
	}
}

func TestComputeGraph_FieldByIndex(t *testing.T) {
	data, err := computeGraph(context.Background(), testLogger(), nullCacheConfig(),
		[]byte(testMeshJSON), buildOptions{noCache: true})
	if err != nil {
		t.Fatalf("computeGraph() failed: %v", err)
	}
	var out struct {
		Nodes []json.RawMessage `json:"nodes"`
	}
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("output is not graph JSON: %v", err)
	}
	if len(out.Nodes) != 2 {
		t.Errorf("got %d nodes, want 2", len(out.Nodes))
	}
}

func TestComputeGraph_NoSuchField(t *testing.T) {
	_, err := computeGraph(context.Background(), testLogger(), nullCacheConfig(),
		[]byte(testMeshJSON), buildOptions{fieldName: "pressure", noCache: true})
	if err == nil {
		t.Fatal("computeGraph() accepted a missing field")
	}
}

func TestComputeGraph_BadMesh(t *testing.T) {
	_, err := computeGraph(context.Background(), testLogger(), nullCacheConfig(),
		[]byte(`{"kind": "polygon"}`), buildOptions{noCache: true})
	if err == nil {
		t.Fatal("computeGraph() accepted an unknown mesh kind")
	}
}
