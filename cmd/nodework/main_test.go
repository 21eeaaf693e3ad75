package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nodework/internal/codec"
	"nodework/internal/domain"
	"nodework/internal/geometry"
	"nodework/internal/library"
	"nodework/internal/repository/sqlite"
)

const twentyYAML = `
nodes:
  - {id: ten, key: int.ten}
  - {id: double, key: int.double, position: {x: 300, y: 0}}
  - {id: node-output, key: int.output, position: {x: 600, y: 0}}
connections:
  - {from: ten.out, to: double.in.0}
  - {from: double.out, to: node-output.in.0}
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	color.NoColor = true

	cfg := writeFile(t, "nodework.yaml", "log:\n  level: error\n")

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--config", cfg}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestLibraryCommand(t *testing.T) {
	out, err := run(t, "library")
	require.NoError(t, err)

	assert.Contains(t, out, "int.double")
	assert.Contains(t, out, "a, b")
	assert.Contains(t, out, "string (output)")
	assert.Contains(t, out, "15 definitions")
}

func TestEvalFile(t *testing.T) {
	path := writeFile(t, "graph.yaml", twentyYAML)

	out, err := run(t, "eval", "-f", path)
	require.NoError(t, err)
	assert.Contains(t, out, "3 nodes, 2 connections")
	assert.Contains(t, out, "output: 20")

	out, err = run(t, "eval", "-f", path, "--verbose")
	require.NoError(t, err)
	assert.Contains(t, out, "int.double")
	assert.Contains(t, out, "Value")
}

func TestEvalSaved(t *testing.T) {
	db := filepath.Join(t.TempDir(), "nodework.db")
	lib := library.Builtin()

	one, err := lib.Lookup("int.one")
	require.NoError(t, err)
	out, err := lib.Lookup("string.output")
	require.NoError(t, err)

	g := domain.NewGraph()
	g.PutNode(domain.NewNode("one", one, geometry.Zero))
	g.PutNode(domain.NewNode(domain.OutputNodeID, out, geometry.New(300, 0)))
	g.Connections = append(g.Connections, domain.Connection{
		ID: "c1", From: domain.OutputID("one"), To: domain.InputID(domain.OutputNodeID, 0),
	})

	data, err := codec.NewJSONCodec().Marshal(codec.NewDocument(g, nil))
	require.NoError(t, err)

	repo, err := sqlite.New(db)
	require.NoError(t, err)
	require.NoError(t, repo.Save(context.Background(), "mine", data))
	require.NoError(t, repo.Close())

	text, err := run(t, "eval", "--db", db, "--key", "mine")
	require.NoError(t, err)
	assert.Contains(t, text, "output: 1")

	text, err = run(t, "eval", "--db", db, "--key", "other")
	require.Error(t, err)
	assert.Contains(t, text, `nothing saved under "other"`)
}

func TestEvalWithoutOutput(t *testing.T) {
	path := writeFile(t, "graph.yaml", "nodes:\n  - {id: a, key: int.one}\n")

	out, err := run(t, "eval", "-f", path)
	require.NoError(t, err)
	assert.Contains(t, out, "no output node")
}

func TestConfigCommands(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.yaml")

	out, err := run(t, "config", "init", path)
	require.NoError(t, err)
	assert.Contains(t, out, "wrote "+path)
	assert.FileExists(t, path)

	_, err = run(t, "config", "init", path)
	assert.Error(t, err)

	_, err = run(t, "config", "init", "--force", path)
	assert.NoError(t, err)

	out, err = run(t, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "Server: :3000")
}
