// ABOUTME: MongoDB Store implementation for settracker persistence
// ABOUTME: Maps driver errors to store sentinels and enforces email uniqueness

package store

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// Collection names within the database.
const (
	usersCollection     = "users"
	foldersCollection   = "workout-folders"
	setsCollection      = "exercise-sets"
	exercisesCollection = "exercises"
)

// MongoStore implements Store backed by a MongoDB database.
type MongoStore struct {
	users     *mongo.Collection
	folders   *mongo.Collection
	sets      *mongo.Collection
	exercises *mongo.Collection
}

// NewMongoStore connects to the given MongoDB URI and returns a store over
// the named database. The connection is verified with a ping so a bad URI
// fails at startup rather than on the first request.
func NewMongoStore(ctx context.Context, uri, dbName string) (*MongoStore, error) {
	client, err := mongo.Connect(options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connecting to mongodb: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("pinging mongodb: %w", err)
	}

	db := client.Database(dbName)
	return &MongoStore{
		users:     db.Collection(usersCollection),
		folders:   db.Collection(foldersCollection),
		sets:      db.Collection(setsCollection),
		exercises: db.Collection(exercisesCollection),
	}, nil
}

// EnsureIndexes creates the indexes the store relies on. The unique index on
// users.email is what makes a concurrent duplicate sign-up lose at insert
// time instead of slipping past the existence precheck.
func (s *MongoStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("creating user email index: %w", err)
	}

	_, err = s.folders.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "user_id", Value: 1}},
	})
	if err != nil {
		return fmt.Errorf("creating folder user index: %w", err)
	}

	_, err = s.sets.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "exercise_id", Value: 1}, {Key: "user_id", Value: 1}},
	})
	if err != nil {
		return fmt.Errorf("creating set exercise index: %w", err)
	}

	return nil
}

// Disconnect closes the underlying client connection.
func (s *MongoStore) Disconnect(ctx context.Context) error {
	return s.users.Database().Client().Disconnect(ctx)
}

// CreateUser inserts a new user. Returns ErrDuplicateEmail if the normalized
// email is already taken.
func (s *MongoStore) CreateUser(ctx context.Context, user *User) error {
	_, err := s.users.InsertOne(ctx, user)
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicateEmail
	}
	if err != nil {
		return fmt.Errorf("inserting user: %w", err)
	}
	return nil
}

// GetUserByID retrieves a user by id.
func (s *MongoStore) GetUserByID(ctx context.Context, id string) (*User, error) {
	var user User
	err := s.users.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("finding user by id: %w", err)
	}
	return &user, nil
}

// GetUserByEmail retrieves a user by normalized email.
func (s *MongoStore) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	var user User
	err := s.users.FindOne(ctx, bson.M{"email": NormalizeEmail(email)}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("finding user by email: %w", err)
	}
	return &user, nil
}

// UpdateUser replaces the stored user document.
func (s *MongoStore) UpdateUser(ctx context.Context, user *User) error {
	result, err := s.users.ReplaceOne(ctx, bson.M{"_id": user.ID}, user)
	if err != nil {
		return fmt.Errorf("updating user: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// CreateFolder inserts a new workout folder.
func (s *MongoStore) CreateFolder(ctx context.Context, folder *WorkoutFolder) error {
	if _, err := s.folders.InsertOne(ctx, folder); err != nil {
		return fmt.Errorf("inserting folder: %w", err)
	}
	return nil
}

// GetFolder retrieves a workout folder by id.
func (s *MongoStore) GetFolder(ctx context.Context, id string) (*WorkoutFolder, error) {
	var folder WorkoutFolder
	err := s.folders.FindOne(ctx, bson.M{"_id": id}).Decode(&folder)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("finding folder: %w", err)
	}
	return &folder, nil
}

// ListFoldersByUser returns all folders owned by the given user.
func (s *MongoStore) ListFoldersByUser(ctx context.Context, userID string) ([]*WorkoutFolder, error) {
	cursor, err := s.folders.Find(ctx, bson.M{"user_id": userID})
	if err != nil {
		return nil, fmt.Errorf("listing folders: %w", err)
	}

	folders := []*WorkoutFolder{}
	if err := cursor.All(ctx, &folders); err != nil {
		return nil, fmt.Errorf("decoding folders: %w", err)
	}
	return folders, nil
}

// UpdateFolder replaces the stored folder document.
func (s *MongoStore) UpdateFolder(ctx context.Context, folder *WorkoutFolder) error {
	result, err := s.folders.ReplaceOne(ctx, bson.M{"_id": folder.ID}, folder)
	if err != nil {
		return fmt.Errorf("updating folder: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteFolder removes a folder by id.
func (s *MongoStore) DeleteFolder(ctx context.Context, id string) error {
	result, err := s.folders.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("deleting folder: %w", err)
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// CreateSet inserts a new exercise set.
func (s *MongoStore) CreateSet(ctx context.Context, set *ExerciseSet) error {
	if _, err := s.sets.InsertOne(ctx, set); err != nil {
		return fmt.Errorf("inserting set: %w", err)
	}
	return nil
}

// GetSet retrieves an exercise set by id.
func (s *MongoStore) GetSet(ctx context.Context, id string) (*ExerciseSet, error) {
	var set ExerciseSet
	err := s.sets.FindOne(ctx, bson.M{"_id": id}).Decode(&set)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("finding set: %w", err)
	}
	return &set, nil
}

// ListSetsByExercise returns the given user's sets for one exercise.
func (s *MongoStore) ListSetsByExercise(ctx context.Context, exerciseID, userID string) ([]*ExerciseSet, error) {
	cursor, err := s.sets.Find(ctx, bson.M{"exercise_id": exerciseID, "user_id": userID})
	if err != nil {
		return nil, fmt.Errorf("listing sets: %w", err)
	}

	sets := []*ExerciseSet{}
	if err := cursor.All(ctx, &sets); err != nil {
		return nil, fmt.Errorf("decoding sets: %w", err)
	}
	return sets, nil
}

// DeleteSet removes an exercise set by id.
func (s *MongoStore) DeleteSet(ctx context.Context, id string) error {
	result, err := s.sets.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("deleting set: %w", err)
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// CreateExercise inserts a new exercise.
func (s *MongoStore) CreateExercise(ctx context.Context, exercise *Exercise) error {
	if _, err := s.exercises.InsertOne(ctx, exercise); err != nil {
		return fmt.Errorf("inserting exercise: %w", err)
	}
	return nil
}

// GetExercise retrieves an exercise by id.
func (s *MongoStore) GetExercise(ctx context.Context, id string) (*Exercise, error) {
	var exercise Exercise
	err := s.exercises.FindOne(ctx, bson.M{"_id": id}).Decode(&exercise)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("finding exercise: %w", err)
	}
	return &exercise, nil
}

// ListExercisesForUser returns system exercises plus the user's own custom ones.
func (s *MongoStore) ListExercisesForUser(ctx context.Context, userID string) ([]*Exercise, error) {
	filter := bson.M{"creator": bson.M{"$in": []string{SystemCreator, userID}}}
	cursor, err := s.exercises.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("listing exercises: %w", err)
	}

	exercises := []*Exercise{}
	if err := cursor.All(ctx, &exercises); err != nil {
		return nil, fmt.Errorf("decoding exercises: %w", err)
	}
	return exercises, nil
}
