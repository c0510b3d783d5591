package dynamodb_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"moviereview/dynamodb"

	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/docker/go-connections/nat"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const dynamoPort = nat.Port("8000/tcp")

func TestNewClient(t *testing.T) {
	t.Run("requires region", func(t *testing.T) {
		_, err := dynamodb.NewClient(context.Background(), dynamodb.Options{})
		assert.EqualError(t, err, "dynamodb: region is required")
	})

	t.Run("requires key pair", func(t *testing.T) {
		_, err := dynamodb.NewClient(context.Background(), dynamodb.Options{Region: "us-east-1", AccessKey: "key"})
		assert.EqualError(t, err, "dynamodb: access key and secret key must be set together")
	})

	t.Run("builds client with static credentials", func(t *testing.T) {
		client, err := dynamodb.NewClient(context.Background(), dynamodb.Options{
			Region:    "us-east-1",
			Endpoint:  "http://localhost:8000",
			AccessKey: "local",
			SecretKey: "local",
		})
		require.NoError(t, err)
		assert.NotNil(t, client)
	})
}

func SetupDynamoDBContainer(t testing.TB) *awsdynamodb.Client {
	t.Helper()
	if testing.Short() {
		t.Skip("container test skipped in short mode")
	}
	ctx := context.Background()

	cont, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "amazon/dynamodb-local:2.2.1",
			ExposedPorts: []string{string(dynamoPort)},
			Cmd:          []string{"-jar", "DynamoDBLocal.jar", "-inMemory", "-sharedDb"},
			WaitingFor:   wait.ForListeningPort(dynamoPort).WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)

	t.Cleanup(func() {
		assert.NoError(t, cont.Terminate(ctx))
	})

	host, err := cont.Host(ctx)
	require.NoError(t, err)
	port, err := cont.MappedPort(ctx, dynamoPort)
	require.NoError(t, err)

	client, err := dynamodb.NewClient(ctx, dynamodb.Options{
		Region:    "us-east-1",
		Endpoint:  fmt.Sprintf("http://%s:%s", host, port.Port()),
		AccessKey: "local",
		SecretKey: "local",
	})
	require.NoError(t, err)

	return client
}
