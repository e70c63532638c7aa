package graphql

import (
	"time"

	"github.com/gfdmit/web-forum/community-service/internal/repository"
	"github.com/graphql-go/graphql"
)

var DateTime = graphql.NewScalar(
	graphql.ScalarConfig{
		Name:        "DateTime",
		Description: "DateTime scalar type",
		Serialize: func(value interface{}) interface{} {
			switch v := value.(type) {
			case time.Time:
				return v.Format(time.RFC3339)
			case *time.Time:
				if v == nil {
					return nil
				}
				return v.Format(time.RFC3339)
			default:
				return nil
			}
		},
	},
)

// authorIDField resolves the nullable author reference of posts and comments.
var authorIDField = &graphql.Field{
	Type: graphql.ID,
	Resolve: func(p graphql.ResolveParams) (interface{}, error) {
		var id *int64
		switch src := p.Source.(type) {
		case repository.Post:
			id = src.AuthorID
		case *repository.Post:
			id = src.AuthorID
		case repository.Comment:
			id = src.AuthorID
		case *repository.Comment:
			id = src.AuthorID
		}
		if id == nil {
			return nil, nil
		}
		return *id, nil
	},
}

func (gh *gqlHandler) initSchema() error {
	commentType := graphql.NewObject(
		graphql.ObjectConfig{
			Name: "Comment",
			Fields: graphql.Fields{
				"id":         &graphql.Field{Type: graphql.ID},
				"postId":     &graphql.Field{Type: graphql.ID},
				"content":    &graphql.Field{Type: graphql.String},
				"authorId":   authorIDField,
				"authorName": &graphql.Field{Type: graphql.String},
				"isGuest":    &graphql.Field{Type: graphql.Boolean},
				"createdAt":  &graphql.Field{Type: DateTime},
				"updatedAt":  &graphql.Field{Type: DateTime},
			},
		},
	)

	postType := graphql.NewObject(
		graphql.ObjectConfig{
			Name: "Post",
			Fields: graphql.Fields{
				"id":         &graphql.Field{Type: graphql.ID},
				"boardId":    &graphql.Field{Type: graphql.ID},
				"title":      &graphql.Field{Type: graphql.String},
				"content":    &graphql.Field{Type: graphql.String},
				"authorId":   authorIDField,
				"authorName": &graphql.Field{Type: graphql.String},
				"isGuest":    &graphql.Field{Type: graphql.Boolean},
				"views":      &graphql.Field{Type: graphql.Int},
				"createdAt":  &graphql.Field{Type: DateTime},
				"updatedAt":  &graphql.Field{Type: DateTime},
				"comments":   getPostCommentsField(commentType),
			},
		},
	)

	boardType := graphql.NewObject(
		graphql.ObjectConfig{
			Name: "Board",
			Fields: graphql.Fields{
				"id":          &graphql.Field{Type: graphql.ID},
				"title":       &graphql.Field{Type: graphql.String},
				"description": &graphql.Field{Type: graphql.String},
				"category":    &graphql.Field{Type: graphql.String},
				"allowGuest":  &graphql.Field{Type: graphql.Boolean},
				"isActive":    &graphql.Field{Type: graphql.Boolean},
				"createdAt":   &graphql.Field{Type: DateTime},
				"updatedAt":   &graphql.Field{Type: DateTime},
				"posts":       getBoardPostsField(gh, postType),
			},
		},
	)

	guestbookType := graphql.NewObject(
		graphql.ObjectConfig{
			Name: "GuestbookEntry",
			Fields: graphql.Fields{
				"id":        &graphql.Field{Type: graphql.ID},
				"name":      &graphql.Field{Type: graphql.String},
				"message":   &graphql.Field{Type: graphql.String},
				"createdAt": &graphql.Field{Type: DateTime},
			},
		},
	)

	queryType := graphql.NewObject(
		graphql.ObjectConfig{
			Name: "Query",
			Fields: graphql.Fields{
				"board":     getBoardQuery(gh, boardType),
				"boards":    getBoardsQuery(gh, boardType),
				"post":      getPostQuery(gh, postType),
				"posts":     getPostsQuery(gh, postType),
				"comments":  getCommentsQuery(gh, commentType),
				"guestbook": getGuestbookQuery(gh, guestbookType),
			},
		},
	)

	schemaConfig := graphql.SchemaConfig{
		Query: queryType,
	}

	schema, err := graphql.NewSchema(schemaConfig)
	if err != nil {
		return err
	}
	gh.schema = schema

	return nil
}
