package e2e_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tableroom/tableroom/internal/api"
	"github.com/tableroom/tableroom/internal/factory"
)

// cliRunner manages CLI binary execution
type cliRunner struct {
	binaryPath string
	serverURL  string
	tokenFile  string
}

func newCLIRunner(t *testing.T, serverURL string) *cliRunner {
	t.Helper()

	// Find project root (where go.mod is)
	projectRoot := findProjectRoot(t)

	// Build the CLI binary
	binaryPath := filepath.Join(projectRoot, "bin", "roomctl-test")
	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/roomctl")
	cmd.Dir = projectRoot
	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "failed to build CLI: %s", string(output))

	// Create temp token file
	tokenFile := filepath.Join(t.TempDir(), "token")

	return &cliRunner{
		binaryPath: binaryPath,
		serverURL:  serverURL,
		tokenFile:  tokenFile,
	}
}

func (r *cliRunner) run(args ...string) (string, error) {
	fullArgs := append([]string{
		"--server", r.serverURL,
		"--token-file", r.tokenFile,
		"--output", "json",
	}, args...)

	cmd := exec.Command(r.binaryPath, fullArgs...)
	output, err := cmd.CombinedOutput()
	return string(output), err
}

func (r *cliRunner) runWithToken(token string, args ...string) (string, error) {
	fullArgs := append([]string{
		"--server", r.serverURL,
		"--token", token,
		"--output", "json",
	}, args...)

	cmd := exec.Command(r.binaryPath, fullArgs...)
	output, err := cmd.CombinedOutput()
	return string(output), err
}

func findProjectRoot(t *testing.T) string {
	t.Helper()

	dir, err := os.Getwd()
	require.NoError(t, err)

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			t.Fatal("could not find project root (go.mod)")
		}
		dir = parent
	}
}

// testServer manages a real HTTP server for e2e tests
type testServer struct {
	server   *http.Server
	addr     string
	shutdown func()
}

func startTestServer(t *testing.T) *testServer {
	t.Helper()

	// Find a free port
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := listener.Addr().String()
	require.NoError(t, listener.Close())

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	app, err := factory.New(factory.Config{Logger: logger})
	require.NoError(t, err)

	router := api.NewRouter(api.RouterConfig{
		Logger:            logger,
		Registry:          app.Registry,
		IdentityService:   app.IdentityService,
		SessionController: app.SessionController,
		HubManager:        app.HubManager,
		WebsocketHandler:  app.WebsocketServer,
	})

	server := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	go func() {
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			t.Logf("server error: %v", err)
		}
	}()

	serverURL := "http://" + addr
	waitForServer(t, serverURL+"/api/v1/health")

	return &testServer{
		server: server,
		addr:   serverURL,
		shutdown: func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = server.Shutdown(ctx)
		},
	}
}

func waitForServer(t *testing.T, url string) {
	t.Helper()

	client := &http.Client{Timeout: 100 * time.Millisecond}
	deadline := time.Now().Add(5 * time.Second)

	for time.Now().Before(deadline) {
		resp, err := client.Get(url)
		if err == nil {
			_ = resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return
			}
		}
		time.Sleep(50 * time.Millisecond)
	}

	t.Fatal("server did not become ready in time")
}

// Response types for JSON parsing
type participantResponse struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
}

type snapshotResponse struct {
	RoomID  string `json:"room_id"`
	Players []struct {
		ID           string `json:"id"`
		DisplayName  string `json:"display_name"`
		Seat         int    `json:"seat"`
		ActionPoints int    `json:"action_points"`
		HealthPoints int    `json:"health_points"`
	} `json:"players"`
	CurrentPlayerID *string `json:"current_player_id"`
	Board           struct {
		Selections []placementResponse `json:"selections"`
		Tokens     []placementResponse `json:"tokens"`
	} `json:"board"`
}

type placementResponse struct {
	PlayerID string `json:"player_id"`
	Index    int    `json:"index"`
}

type healthResponse struct {
	Status string `json:"status"`
	Rooms  int    `json:"rooms"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// Tests

func TestCLI_HealthCheck(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	output, err := cli.run("health")
	require.NoError(t, err, "output: %s", output)

	var resp healthResponse
	require.NoError(t, json.Unmarshal([]byte(output), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, 0, resp.Rooms)
}

func TestCLI_ParticipantCommands(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	// Create participant
	output, err := cli.run("participant", "create", "--name", "Alice")
	require.NoError(t, err, "output: %s", output)

	var created participantResponse
	require.NoError(t, json.Unmarshal([]byte(output), &created))
	assert.Equal(t, "Alice", created.DisplayName)
	assert.NotEmpty(t, created.ID)

	// Get me (token should be saved in token file)
	output, err = cli.run("participant", "me")
	require.NoError(t, err, "output: %s", output)

	var me participantResponse
	require.NoError(t, json.Unmarshal([]byte(output), &me))
	assert.Equal(t, "Alice", me.DisplayName)
	assert.Equal(t, created.ID, me.ID)
}

func TestCLI_FullSessionFlow(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	// Two CLI runners with separate token files
	cli1 := newCLIRunner(t, ts.addr)
	cli2 := &cliRunner{
		binaryPath: cli1.binaryPath,
		serverURL:  cli1.serverURL,
		tokenFile:  filepath.Join(t.TempDir(), "token2"),
	}

	// Create two participants
	output, err := cli1.run("participant", "create", "--name", "Alice")
	require.NoError(t, err, "output: %s", output)
	var alice participantResponse
	require.NoError(t, json.Unmarshal([]byte(output), &alice))

	output, err = cli2.run("participant", "create", "--name", "Bob")
	require.NoError(t, err, "output: %s", output)
	var bob participantResponse
	require.NoError(t, json.Unmarshal([]byte(output), &bob))

	// Alice joins; the room comes into being and her turn starts
	output, err = cli1.run("room", "join", "table-1")
	require.NoError(t, err, "output: %s", output)
	var snap snapshotResponse
	require.NoError(t, json.Unmarshal([]byte(output), &snap))
	require.Len(t, snap.Players, 1)
	assert.Equal(t, 4, snap.Players[0].ActionPoints)
	require.NotNil(t, snap.CurrentPlayerID)
	assert.Equal(t, alice.ID, *snap.CurrentPlayerID)

	// Bob joins at seat 2 with empty pools
	output, err = cli2.run("room", "join", "table-1")
	require.NoError(t, err, "output: %s", output)
	require.NoError(t, json.Unmarshal([]byte(output), &snap))
	require.Len(t, snap.Players, 2)
	assert.Equal(t, 2, snap.Players[1].Seat)
	assert.Equal(t, 0, snap.Players[1].ActionPoints)

	// Alice places a token
	output, err = cli1.run("room", "token", "table-1", "5")
	require.NoError(t, err, "output: %s", output)
	require.NoError(t, json.Unmarshal([]byte(output), &snap))
	require.Len(t, snap.Board.Tokens, 1)
	assert.Equal(t, 5, snap.Board.Tokens[0].Index)
	assert.Equal(t, 3, snap.Players[0].ActionPoints)

	// Bob pings a cell out of turn; markers are always allowed
	output, err = cli2.run("room", "marker", "table-1", "7")
	require.NoError(t, err, "output: %s", output)
	require.NoError(t, json.Unmarshal([]byte(output), &snap))
	require.Len(t, snap.Board.Selections, 1)
	assert.Equal(t, bob.ID, snap.Board.Selections[0].PlayerID)

	// Bob tries to place a token out of turn; silently refused
	output, err = cli2.run("room", "token", "table-1", "3")
	require.NoError(t, err, "output: %s", output)
	var msg messageResponse
	require.NoError(t, json.Unmarshal([]byte(output), &msg))
	assert.Equal(t, "no state change", msg.Message)

	// Alice ends her turn; Bob becomes current with fresh action points
	output, err = cli1.run("room", "end-turn", "table-1")
	require.NoError(t, err, "output: %s", output)
	require.NoError(t, json.Unmarshal([]byte(output), &snap))
	require.NotNil(t, snap.CurrentPlayerID)
	assert.Equal(t, bob.ID, *snap.CurrentPlayerID)
	assert.Equal(t, 4, snap.Players[1].ActionPoints)

	// Bob meditates
	output, err = cli2.run("room", "meditate", "table-1")
	require.NoError(t, err, "output: %s", output)
	require.NoError(t, json.Unmarshal([]byte(output), &snap))
	assert.Equal(t, 2, snap.Players[1].HealthPoints)
	assert.Equal(t, 3, snap.Players[1].ActionPoints)

	// Both leave; the room is destroyed
	output, err = cli1.run("room", "leave", "table-1")
	require.NoError(t, err, "output: %s", output)

	output, err = cli2.run("room", "leave", "table-1")
	require.NoError(t, err, "output: %s", output)

	output, err = cli1.run("room", "snapshot", "table-1")
	assert.Error(t, err)
	assert.Contains(t, strings.ToLower(output), "not found")
}

func TestCLI_ErrorHandling(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	// Query without an identity
	output, err := cli.run("participant", "me")
	assert.Error(t, err)
	assert.Contains(t, strings.ToLower(output), "identity")

	// Snapshot of a room that never existed
	output, err = cli.run("participant", "create", "--name", "Alice")
	require.NoError(t, err, "output: %s", output)

	output, err = cli.run("room", "snapshot", "ghost")
	assert.Error(t, err)
	assert.Contains(t, strings.ToLower(output), "not found")
}
