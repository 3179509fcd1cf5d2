package models

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserNames(t *testing.T) {
	u := User{FirstName: "Ada", LastName: "Lovelace"}
	assert.Equal(t, "Ada Lovelace", u.FullName())
	assert.Equal(t, "Ada", u.ShortName())

	assert.Equal(t, "Ada", User{FirstName: "Ada"}.FullName())
	assert.Equal(t, "Lovelace", User{LastName: "Lovelace"}.FullName())
	assert.Equal(t, "", User{}.FullName())
}

func TestStringers(t *testing.T) {
	assert.Equal(t, "Hello", Post{Title: "Hello"}.String())
	assert.Equal(t, "Go", Category{Title: "Go"}.String())
	assert.Equal(t, "Generics", Subcategory{Title: "Generics"}.String())
	assert.Equal(t, "golang", Tag{Title: "golang"}.String())
	assert.Equal(t, "-3", PostRating{Value: -3}.String())
}

func TestUserInfoTableName(t *testing.T) {
	assert.Equal(t, "user_info", UserInfo{}.TableName())
}

func TestAllOrdersReferencedTablesFirst(t *testing.T) {
	index := map[string]int{}
	for i, m := range All() {
		switch m.(type) {
		case *Image:
			index["images"] = i
		case *User:
			index["users"] = i
		case *Category:
			index["categories"] = i
		case *Subcategory:
			index["subcategories"] = i
		case *Tag:
			index["tags"] = i
		case *Post:
			index["posts"] = i
		}
	}
	assert.Len(t, All(), 9)
	assert.Less(t, index["images"], index["users"])
	assert.Less(t, index["users"], index["posts"])
	assert.Less(t, index["subcategories"], index["categories"])
	assert.Less(t, index["categories"], index["posts"])
	assert.Less(t, index["tags"], index["posts"])
}

func TestLabelsField(t *testing.T) {
	labels := DefaultLabels()
	assert.Equal(t, "author", labels.Field("posts", "user"))
	assert.Equal(t, "surname", labels.Field("users", "last_name"))
	assert.Equal(t, "unknown", labels.Field("posts", "unknown"))
	assert.Equal(t, "title", labels.Field("nope", "title"))
	assert.Equal(t, "users info", labels["user_info"].Plural)
}

func TestLoadLabels(t *testing.T) {
	t.Run("empty path returns defaults", func(t *testing.T) {
		labels, err := LoadLabels("")
		require.NoError(t, err)
		assert.Equal(t, DefaultLabels(), labels)
	})

	t.Run("overrides are merged", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "labels.json")
		body := `{
			"posts": {"name": "article", "fields": {"body": "content"}},
			"polls": {"name": "poll", "fields": {"question": "question"}}
		}`
		require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

		labels, err := LoadLabels(path)
		require.NoError(t, err)
		assert.Equal(t, "article", labels["posts"].Name)
		assert.Equal(t, "posts", labels["posts"].Plural)
		assert.Equal(t, "content", labels.Field("posts", "body"))
		assert.Equal(t, "author", labels.Field("posts", "user"))
		assert.Equal(t, "poll", labels["polls"].Name)
		assert.Equal(t, "question", labels.Field("polls", "question"))
	})

	t.Run("defaults are not shared", func(t *testing.T) {
		a := DefaultLabels()
		a["posts"].Fields["title"] = "changed"
		assert.Equal(t, "title", DefaultLabels().Field("posts", "title"))
	})

	t.Run("bad json", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "labels.json")
		require.NoError(t, os.WriteFile(path, []byte("{"), 0o600))
		_, err := LoadLabels(path)
		assert.Error(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadLabels(filepath.Join(t.TempDir(), "missing.json"))
		assert.Error(t, err)
	})
}
