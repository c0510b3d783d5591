package dynamodb

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"moviereview/movie"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// counterKey is the tmdb_id of the item holding the id sequence. TMDB ids
// are always positive so it never collides with a movie.
const counterKey int64 = 0

// MovieRepository implements movie.Repository on a DynamoDB table whose
// partition key is the numeric attribute tmdb_id.
type MovieRepository struct {
	client *dynamodb.Client
	table  string
}

type movieItem struct {
	TmdbID     int64  `dynamodbav:"tmdb_id"`
	ID         int64  `dynamodbav:"id"`
	Title      string `dynamodbav:"title"`
	PosterPath string `dynamodbav:"poster_path"`
}

func NewMovieRepository(client *dynamodb.Client, table string) *MovieRepository {
	return &MovieRepository{client: client, table: table}
}

func (r *MovieRepository) FindByExternalID(ctx context.Context, externalID int64) (movie.Movie, bool, error) {
	if err := validateTable(r.table); err != nil {
		return movie.Movie{}, false, err
	}

	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      &r.table,
		Key:            movieKey(externalID),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return movie.Movie{}, false, fmt.Errorf("dynamodb: get movie: %w", err)
	}
	if len(out.Item) == 0 {
		return movie.Movie{}, false, nil
	}

	m, err := unmarshalMovie(out.Item)
	if err != nil {
		return movie.Movie{}, false, err
	}
	return m, true, nil
}

// Upsert overwrites title and poster of an existing item, keeping its id.
// Otherwise a candidate id is drawn from the counter and written with
// if_not_exists, so concurrent first writes agree on one id.
func (r *MovieRepository) Upsert(ctx context.Context, m movie.Movie) (movie.Movie, error) {
	if err := validateTable(r.table); err != nil {
		return movie.Movie{}, err
	}
	if m.ExternalID <= counterKey {
		return movie.Movie{}, movie.ErrInvalidExternalID
	}

	out, err := r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:           &r.table,
		Key:                 movieKey(m.ExternalID),
		UpdateExpression:    aws.String("SET title = :title, poster_path = :poster"),
		ConditionExpression: aws.String("attribute_exists(id)"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":title":  &types.AttributeValueMemberS{Value: m.Title},
			":poster": &types.AttributeValueMemberS{Value: m.PosterPath},
		},
		ReturnValues: types.ReturnValueAllNew,
	})
	if err == nil {
		return unmarshalMovie(out.Attributes)
	}
	var condErr *types.ConditionalCheckFailedException
	if !errors.As(err, &condErr) {
		return movie.Movie{}, storeError("update movie", err)
	}

	candidate, err := r.nextID(ctx)
	if err != nil {
		return movie.Movie{}, err
	}

	out, err = r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:        &r.table,
		Key:              movieKey(m.ExternalID),
		UpdateExpression: aws.String("SET title = :title, poster_path = :poster, id = if_not_exists(id, :candidate)"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":title":     &types.AttributeValueMemberS{Value: m.Title},
			":poster":    &types.AttributeValueMemberS{Value: m.PosterPath},
			":candidate": numberValue(candidate),
		},
		ReturnValues: types.ReturnValueAllNew,
	})
	if err != nil {
		return movie.Movie{}, storeError("insert movie", err)
	}
	return unmarshalMovie(out.Attributes)
}

func (r *MovieRepository) nextID(ctx context.Context) (int64, error) {
	out, err := r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:        &r.table,
		Key:              movieKey(counterKey),
		UpdateExpression: aws.String("ADD seq :one"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":one": numberValue(1),
		},
		ReturnValues: types.ReturnValueUpdatedNew,
	})
	if err != nil {
		return 0, storeError("next movie id", err)
	}

	var counter struct {
		Seq int64 `dynamodbav:"seq"`
	}
	if err := attributevalue.UnmarshalMap(out.Attributes, &counter); err != nil {
		return 0, fmt.Errorf("dynamodb: unmarshal counter: %w", err)
	}
	return counter.Seq, nil
}

// CreateMoviesTable creates the on-demand movies table if it is missing.
func CreateMoviesTable(ctx context.Context, client *dynamodb.Client, table string) error {
	if err := validateTable(table); err != nil {
		return err
	}

	_, err := client.CreateTable(ctx, &dynamodb.CreateTableInput{
		TableName: &table,
		AttributeDefinitions: []types.AttributeDefinition{
			{AttributeName: aws.String("tmdb_id"), AttributeType: types.ScalarAttributeTypeN},
		},
		KeySchema: []types.KeySchemaElement{
			{AttributeName: aws.String("tmdb_id"), KeyType: types.KeyTypeHash},
		},
		BillingMode: types.BillingModePayPerRequest,
	})
	if err != nil {
		var inUse *types.ResourceInUseException
		if errors.As(err, &inUse) {
			return nil
		}
		return fmt.Errorf("dynamodb: create table %s: %w", table, err)
	}
	return nil
}

func storeError(op string, err error) error {
	var (
		condErr *types.ConditionalCheckFailedException
		txErr   *types.TransactionConflictException
	)
	if errors.As(err, &condErr) || errors.As(err, &txErr) {
		return fmt.Errorf("%w: dynamodb: %s: %w", movie.ErrPersistenceConflict, op, err)
	}
	return fmt.Errorf("dynamodb: %s: %w", op, err)
}

func unmarshalMovie(av map[string]types.AttributeValue) (movie.Movie, error) {
	var item movieItem
	if err := attributevalue.UnmarshalMap(av, &item); err != nil {
		return movie.Movie{}, fmt.Errorf("dynamodb: unmarshal movie: %w", err)
	}
	return movie.Movie{
		ID:         item.ID,
		ExternalID: item.TmdbID,
		Title:      item.Title,
		PosterPath: item.PosterPath,
	}, nil
}

func movieKey(externalID int64) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{"tmdb_id": numberValue(externalID)}
}

func numberValue(n int64) *types.AttributeValueMemberN {
	return &types.AttributeValueMemberN{Value: strconv.FormatInt(n, 10)}
}
