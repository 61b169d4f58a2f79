package e2e

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/kilianp07/prodplan/app"
	"github.com/kilianp07/prodplan/config"
	coremqtt "github.com/kilianp07/prodplan/core/mqtt"
)

const payload = `{
  "load": 910,
  "fuels": {"gas(euro/MWh)": 13.4, "kerosine(euro/MWh)": 50.8, "co2(euro/ton)": 20, "wind(%)": 60},
  "powerplants": [
    {"name": "gasfiredbig1", "type": "gasfired", "efficiency": 0.53, "pmin": 100, "pmax": 460},
    {"name": "gasfiredbig2", "type": "gasfired", "efficiency": 0.53, "pmin": 100, "pmax": 460},
    {"name": "gasfiredsomewhatsmaller", "type": "gasfired", "efficiency": 0.37, "pmin": 40, "pmax": 210},
    {"name": "tj1", "type": "turbojet", "efficiency": 0.3, "pmin": 0, "pmax": 16},
    {"name": "windpark1", "type": "windturbine", "efficiency": 1, "pmin": 0, "pmax": 150},
    {"name": "windpark2", "type": "windturbine", "efficiency": 1, "pmin": 0, "pmax": 36}
  ]
}`

// startMosquitto spins up a Mosquitto broker accepting anonymous clients.
func startMosquitto(ctx context.Context, t *testing.T) (tc.Container, string) {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "mosquitto.conf")
	require.NoError(t, os.WriteFile(path, []byte("listener 1883\nallow_anonymous true\npersistence false\n"), 0o644))
	req := tc.ContainerRequest{
		Image:        "eclipse-mosquitto:2.0",
		ExposedPorts: []string{"1883/tcp"},
		WaitingFor:   wait.ForListeningPort("1883/tcp"),
		Files: []tc.ContainerFile{
			{HostFilePath: path, ContainerFilePath: "/mosquitto/config/mosquitto.conf", FileMode: 0o644},
		},
	}
	cont, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{ContainerRequest: req, Started: true})
	if err != nil {
		t.Skipf("unable to start mosquitto: %v", err)
	}
	host, err := cont.Host(ctx)
	require.NoError(t, err)
	port, err := cont.MappedPort(ctx, "1883")
	require.NoError(t, err)
	return cont, fmt.Sprintf("tcp://%s:%s", host, port.Port())
}

func subscribe(t *testing.T, broker, topic string) <-chan coremqtt.PlanMessage {
	t.Helper()
	cli := paho.NewClient(paho.NewClientOptions().AddBroker(broker).SetClientID("e2e-sub"))
	var err error
	for i := 0; i < 5; i++ {
		token := cli.Connect()
		token.Wait()
		if err = token.Error(); err == nil {
			break
		}
		time.Sleep(time.Duration(i+1) * 200 * time.Millisecond)
	}
	if err != nil {
		t.Skipf("mosquitto not ready: %v", err)
	}
	t.Cleanup(func() { cli.Disconnect(100) })

	msgs := make(chan coremqtt.PlanMessage, 4)
	token := cli.Subscribe(topic, 1, func(_ paho.Client, m paho.Message) {
		var msg coremqtt.PlanMessage
		if json.Unmarshal(m.Payload(), &msg) == nil {
			msgs <- msg
		}
	})
	token.Wait()
	require.NoError(t, token.Error())
	return msgs
}

// TestPlanPublishedOverMQTT runs the service against a real broker and checks
// that a plan computed over HTTP is logged and published.
func TestPlanPublishedOverMQTT(t *testing.T) {
	if _, err := exec.LookPath("docker"); err != nil {
		t.Skipf("docker not installed: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	cont, broker := startMosquitto(ctx, t)
	defer cont.Terminate(ctx) //nolint:errcheck
	msgs := subscribe(t, broker, "productionplan/plans")

	cfg := &config.Config{}
	cfg.PlanLog.Path = filepath.Join(t.TempDir(), "plans.jsonl")
	cfg.MQTT.Enabled = true
	cfg.MQTT.Broker = broker
	cfg.MQTT.QoS = 1
	cfg.SetDefaults()
	require.NoError(t, cfg.Validate())

	svc, err := app.New(cfg)
	require.NoError(t, err)
	svc.Start(ctx)
	defer func() { require.NoError(t, svc.Close()) }()

	srv := httptest.NewServer(svc.Handler())
	defer srv.Close()
	resp, err := http.Post(srv.URL+"/productionplan", "application/json", strings.NewReader(payload))
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	planID := resp.Header.Get("X-Plan-ID")

	select {
	case msg := <-msgs:
		assert.Equal(t, planID, msg.PlanID)
		assert.NotEmpty(t, msg.MessageID)
		assert.True(t, msg.Feasible)
		assert.InDelta(t, 910.0, msg.Total, 0.1)
		require.Len(t, msg.Plan, 6)
		assert.Equal(t, "windpark1", msg.Plan[0].Name)
	case <-time.After(10 * time.Second):
		t.Fatal("timeout waiting for plan message")
	}
}
