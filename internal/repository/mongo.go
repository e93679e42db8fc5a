package repository

import (
	"context"
	"errors"
	"fmt"
	"forum-permission-service/internal/config"
	"forum-permission-service/internal/repository/model"
	"forum-permission-service/internal/repository/registrytypes"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsoncodec"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
	"sync"
	"time"
)

const (
	databaseName = "forum-permission-service"

	siteCollectionName          = "sites"
	categoryCollectionName      = "categories"
	forumCollectionName         = "forums"
	permissionSetCollectionName = "permissionSets"
	permissionCollectionName    = "permissions"
	memberCollectionName        = "members"
	topicCollectionName         = "topics"
	replyCollectionName         = "replies"
	eventCollectionName         = "events"
)

type mongoRepository struct {
	database *mongo.Database

	siteCollection          *mongo.Collection
	categoryCollection      *mongo.Collection
	forumCollection         *mongo.Collection
	permissionSetCollection *mongo.Collection
	permissionCollection    *mongo.Collection
	memberCollection        *mongo.Collection
	topicCollection         *mongo.Collection
	replyCollection         *mongo.Collection
	eventCollection         *mongo.Collection
}

func NewMongoRepository(ctx context.Context, logger *zap.SugaredLogger, wg *sync.WaitGroup, cfg config.MongoDBConfig) (Repository, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI).SetRegistry(createCodecRegistry()))
	if err != nil {
		return nil, err
	}

	database := client.Database(databaseName)
	repo := &mongoRepository{
		database:                database,
		siteCollection:          database.Collection(siteCollectionName),
		categoryCollection:      database.Collection(categoryCollectionName),
		forumCollection:         database.Collection(forumCollectionName),
		permissionSetCollection: database.Collection(permissionSetCollectionName),
		permissionCollection:    database.Collection(permissionCollectionName),
		memberCollection:        database.Collection(memberCollectionName),
		topicCollection:         database.Collection(topicCollectionName),
		replyCollection:         database.Collection(replyCollectionName),
		eventCollection:         database.Collection(eventCollectionName),
	}

	if err := repo.createIndexes(ctx); err != nil {
		return nil, fmt.Errorf("failed to create indexes: %w", err)
	}

	if wg != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-ctx.Done()
			if err := client.Disconnect(context.Background()); err != nil {
				logger.Errorw("failed to disconnect from mongo", "error", err)
			}
		}()
	}

	return repo, nil
}

func (m *mongoRepository) createIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	// At most one grant per (set, role, action)
	_, err := m.permissionCollection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "permissionSetId", Value: 1}, {Key: "roleId", Value: 1}, {Key: "type", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return err
	}

	_, err = m.categoryCollection.Indexes().CreateOne(ctx, mongo.IndexModel{Keys: bson.D{{Key: "siteId", Value: 1}}})
	if err != nil {
		return err
	}

	_, err = m.forumCollection.Indexes().CreateOne(ctx, mongo.IndexModel{Keys: bson.D{{Key: "categoryId", Value: 1}}})
	if err != nil {
		return err
	}

	_, err = m.memberCollection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "userId", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

func (m *mongoRepository) GetSiteByName(ctx context.Context, name string) (*model.Site, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var site model.Site
	if err := m.siteCollection.FindOne(ctx, bson.M{"name": name}).Decode(&site); err != nil {
		return nil, notFound(err, "site %s", name)
	}

	return &site, nil
}

func (m *mongoRepository) GetForumPermissionSets(ctx context.Context, siteId uuid.UUID) ([]model.ForumPermissionSet, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := m.categoryCollection.Find(ctx, bson.M{"siteId": siteId, "status": bson.M{"$ne": model.StatusDeleted}})
	if err != nil {
		return nil, err
	}

	var categories []model.Category
	if err := cursor.All(ctx, &categories); err != nil {
		return nil, err
	}

	if len(categories) == 0 {
		return []model.ForumPermissionSet{}, nil
	}

	categorySets := make(map[uuid.UUID]uuid.UUID, len(categories))
	categoryIds := make([]uuid.UUID, len(categories))
	for i, c := range categories {
		categorySets[c.Id] = c.PermissionSetId
		categoryIds[i] = c.Id
	}

	cursor, err = m.forumCollection.Find(ctx, bson.M{"categoryId": bson.M{"$in": categoryIds}, "status": model.StatusPublished})
	if err != nil {
		return nil, err
	}

	var forums []model.Forum
	if err := cursor.All(ctx, &forums); err != nil {
		return nil, err
	}

	result := make([]model.ForumPermissionSet, len(forums))
	for i, f := range forums {
		fps := model.ForumPermissionSet{ForumId: f.Id}
		if f.PermissionSetId != nil && *f.PermissionSetId != uuid.Nil {
			fps.Override = uuid.NullUUID{UUID: *f.PermissionSetId, Valid: true}
		}
		if setId := categorySets[f.CategoryId]; setId != uuid.Nil {
			fps.Default = uuid.NullUUID{UUID: setId, Valid: true}
		}
		result[i] = fps
	}

	return result, nil
}

func (m *mongoRepository) GetPermissions(ctx context.Context, permissionSetId uuid.UUID) ([]model.Permission, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := m.permissionCollection.Find(ctx, bson.M{"permissionSetId": permissionSetId})
	if err != nil {
		return nil, err
	}

	result := make([]model.Permission, 0)
	if err := cursor.All(ctx, &result); err != nil {
		return nil, err
	}

	return result, nil
}

func (m *mongoRepository) GetMemberByUserId(ctx context.Context, userId string) (*model.Member, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var member model.Member
	if err := m.memberCollection.FindOne(ctx, bson.M{"userId": userId}).Decode(&member); err != nil {
		return nil, notFound(err, "member for user %s", userId)
	}

	return &member, nil
}

func (m *mongoRepository) GetTopicInfo(ctx context.Context, siteId uuid.UUID, forumId uuid.UUID, topicId uuid.UUID) (*model.ContentInfo, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"_id": topicId, "forumId": forumId, "status": bson.M{"$ne": model.StatusDeleted}}

	var topic model.Topic
	if err := m.topicCollection.FindOne(ctx, filter).Decode(&topic); err != nil {
		return nil, notFound(err, "topic %s", topicId)
	}

	if _, err := m.findForumInSite(ctx, siteId, forumId); err != nil {
		return nil, err
	}

	return &model.ContentInfo{MemberId: topic.MemberId, Locked: topic.Locked}, nil
}

func (m *mongoRepository) GetReplyInfo(ctx context.Context, siteId uuid.UUID, forumId uuid.UUID, topicId uuid.UUID, replyId uuid.UUID) (*model.ContentInfo, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"_id": replyId, "topicId": topicId, "forumId": forumId, "status": bson.M{"$ne": model.StatusDeleted}}

	var reply model.Reply
	if err := m.replyCollection.FindOne(ctx, filter).Decode(&reply); err != nil {
		return nil, notFound(err, "reply %s", replyId)
	}

	// The reply is only reachable through a live topic of the same forum.
	topicFilter := bson.M{"_id": topicId, "forumId": forumId, "status": bson.M{"$ne": model.StatusDeleted}}
	count, err := m.topicCollection.CountDocuments(ctx, topicFilter, options.Count().SetLimit(1))
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, fmt.Errorf("topic %s of reply %s: %w", topicId, replyId, ErrNotFound)
	}

	if _, err := m.findForumInSite(ctx, siteId, forumId); err != nil {
		return nil, err
	}

	return &model.ContentInfo{MemberId: reply.MemberId}, nil
}

func (m *mongoRepository) GetPermissionSet(ctx context.Context, siteId uuid.UUID, id uuid.UUID) (*model.PermissionSet, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var set model.PermissionSet
	if err := m.permissionSetCollection.FindOne(ctx, bson.M{"_id": id, "siteId": siteId}).Decode(&set); err != nil {
		return nil, notFound(err, "permission set %s", id)
	}

	return &set, nil
}

func (m *mongoRepository) CreatePermissionSet(ctx context.Context, set *model.PermissionSet, permissions []model.Permission) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := m.permissionSetCollection.InsertOne(ctx, set); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("permission set %s: %w", set.Id, ErrAlreadyExists)
		}
		return err
	}

	return m.insertPermissions(ctx, permissions)
}

// UpdatePermissionSet replaces the set's document and all of its grants.
// New grants are upserted before the ones no longer wanted are deleted, so a
// failure part way through never leaves a grant kept by both the old and the
// new set missing.
func (m *mongoRepository) UpdatePermissionSet(ctx context.Context, set *model.PermissionSet, permissions []model.Permission) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	result, err := m.permissionSetCollection.ReplaceOne(ctx, bson.M{"_id": set.Id, "siteId": set.SiteId}, set)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("permission set %s: %w", set.Id, ErrNotFound)
	}

	stale := bson.M{"permissionSetId": set.Id}

	if len(permissions) > 0 {
		writes := make([]mongo.WriteModel, len(permissions))
		keep := make(bson.A, len(permissions))
		for i, p := range permissions {
			key := bson.M{"permissionSetId": set.Id, "roleId": p.RoleId, "type": p.Type}
			writes[i] = mongo.NewReplaceOneModel().SetFilter(key).SetReplacement(p).SetUpsert(true)
			keep[i] = bson.M{"roleId": p.RoleId, "type": p.Type}
		}

		if _, err := m.permissionCollection.BulkWrite(ctx, writes); err != nil {
			return fmt.Errorf("failed to upsert permissions: %w", err)
		}
		stale["$nor"] = keep
	}

	if _, err := m.permissionCollection.DeleteMany(ctx, stale); err != nil {
		return fmt.Errorf("failed to delete stale permissions: %w", err)
	}

	return nil
}

func (m *mongoRepository) DeletePermissionSet(ctx context.Context, siteId uuid.UUID, id uuid.UUID) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	result, err := m.permissionSetCollection.DeleteOne(ctx, bson.M{"_id": id, "siteId": siteId})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("permission set %s: %w", id, ErrNotFound)
	}

	_, err = m.permissionCollection.DeleteMany(ctx, bson.M{"permissionSetId": id})
	return err
}

func (m *mongoRepository) IsPermissionSetInUse(ctx context.Context, id uuid.UUID) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"permissionSetId": id, "status": bson.M{"$ne": model.StatusDeleted}}

	count, err := m.categoryCollection.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}
	if count > 0 {
		return true, nil
	}

	count, err = m.forumCollection.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

func (m *mongoRepository) GetCategory(ctx context.Context, siteId uuid.UUID, id uuid.UUID) (*model.Category, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var category model.Category
	filter := bson.M{"_id": id, "siteId": siteId, "status": bson.M{"$ne": model.StatusDeleted}}
	if err := m.categoryCollection.FindOne(ctx, filter).Decode(&category); err != nil {
		return nil, notFound(err, "category %s", id)
	}

	return &category, nil
}

func (m *mongoRepository) UpdateCategory(ctx context.Context, category *model.Category) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	result, err := m.categoryCollection.ReplaceOne(ctx, bson.M{"_id": category.Id, "siteId": category.SiteId}, category)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("category %s: %w", category.Id, ErrNotFound)
	}

	return nil
}

func (m *mongoRepository) GetForum(ctx context.Context, siteId uuid.UUID, id uuid.UUID) (*model.Forum, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	return m.findForumInSite(ctx, siteId, id)
}

func (m *mongoRepository) UpdateForum(ctx context.Context, forum *model.Forum) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	result, err := m.forumCollection.ReplaceOne(ctx, bson.M{"_id": forum.Id}, forum)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("forum %s: %w", forum.Id, ErrNotFound)
	}

	return nil
}

func (m *mongoRepository) CreateEvent(ctx context.Context, event *model.Event) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := m.eventCollection.InsertOne(ctx, event)
	return err
}

// findForumInSite follows forum -> category -> site and returns the forum
// only if the chain ends at siteId.
func (m *mongoRepository) findForumInSite(ctx context.Context, siteId uuid.UUID, forumId uuid.UUID) (*model.Forum, error) {
	var forum model.Forum
	filter := bson.M{"_id": forumId, "status": bson.M{"$ne": model.StatusDeleted}}
	if err := m.forumCollection.FindOne(ctx, filter).Decode(&forum); err != nil {
		return nil, notFound(err, "forum %s", forumId)
	}

	count, err := m.categoryCollection.CountDocuments(ctx, bson.M{"_id": forum.CategoryId, "siteId": siteId}, options.Count().SetLimit(1))
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, fmt.Errorf("forum %s in site %s: %w", forumId, siteId, ErrNotFound)
	}

	return &forum, nil
}

func (m *mongoRepository) insertPermissions(ctx context.Context, permissions []model.Permission) error {
	if len(permissions) == 0 {
		return nil
	}

	docs := make([]interface{}, len(permissions))
	for i, p := range permissions {
		docs[i] = p
	}

	if _, err := m.permissionCollection.InsertMany(ctx, docs); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("permission: %w", ErrAlreadyExists)
		}
		return err
	}

	return nil
}

func notFound(err error, format string, args ...any) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrNotFound)
	}
	return err
}

func createCodecRegistry() *bsoncodec.Registry {
	return bson.NewRegistryBuilder().
		RegisterTypeEncoder(registrytypes.UUIDType, bsoncodec.ValueEncoderFunc(registrytypes.UuidEncodeValue)).
		RegisterTypeDecoder(registrytypes.UUIDType, bsoncodec.ValueDecoderFunc(registrytypes.UuidDecodeValue)).
		Build()
}
