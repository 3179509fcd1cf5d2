package models

import (
	"encoding/json"
	"fmt"
	"os"
)

// EntityLabels is display metadata for one entity. It carries no behavior.
type EntityLabels struct {
	Name   string            `json:"name"`
	Plural string            `json:"plural"`
	Fields map[string]string `json:"fields"`
}

type Labels map[string]EntityLabels

// DefaultLabels returns a fresh copy of the built-in labels, keyed by table name.
func DefaultLabels() Labels {
	return Labels{
		"users": {
			Name:   "user",
			Plural: "users",
			Fields: map[string]string{
				"email":        "email",
				"first_name":   "name",
				"last_name":    "surname",
				"birthday":     "birthday",
				"phone_number": "phone_number",
				"date_joined":  "registered",
				"is_active":    "is_active",
				"avatar":       "avatar",
			},
		},
		"user_info": {
			Name:   "user info",
			Plural: "users info",
			Fields: map[string]string{
				"country": "country",
				"city":    "city",
				"address": "address",
				"phone":   "phone",
				"created": "created",
				"updated": "updated",
			},
		},
		"posts": {
			Name:   "post",
			Plural: "posts",
			Fields: map[string]string{
				"user":        "author",
				"category":    "category",
				"subcategory": "subcategory",
				"title":       "title",
				"body":        "text",
				"tags":        "tags",
				"created":     "created",
				"updated":     "updated",
				"image":       "image",
			},
		},
		"categories": {
			Name:   "category",
			Plural: "categories",
			Fields: map[string]string{
				"title":         "title",
				"subcategories": "subcategories",
				"created":       "created",
			},
		},
		"subcategories": {
			Name:   "subcategory",
			Plural: "subcategories",
			Fields: map[string]string{
				"title":   "title",
				"created": "created",
			},
		},
		"tags": {
			Name:   "tag",
			Plural: "tags",
			Fields: map[string]string{
				"title":   "title",
				"created": "created",
			},
		},
		"comments": {
			Name:   "comment",
			Plural: "comments",
			Fields: map[string]string{
				"user":    "user",
				"post":    "post",
				"body":    "text",
				"created": "created",
				"updated": "updated",
			},
		},
		"post_ratings": {
			Name:   "rating",
			Plural: "ratings",
			Fields: map[string]string{
				"value":   "value",
				"user":    "user",
				"post":    "post",
				"created": "created",
				"updated": "updated",
			},
		},
		"images": {
			Name:   "image",
			Plural: "images",
			Fields: map[string]string{
				"image_url": "image_url",
				"length":    "length",
				"width":     "width",
				"created":   "created",
			},
		},
	}
}

// Field returns the label for a field, falling back to the field name.
func (l Labels) Field(entity, field string) string {
	if e, ok := l[entity]; ok {
		if label, ok := e.Fields[field]; ok && label != "" {
			return label
		}
	}
	return field
}

// Merge overlays non-empty values from other onto l.
func (l Labels) Merge(other Labels) {
	for entity, o := range other {
		cur := l[entity]
		if o.Name != "" {
			cur.Name = o.Name
		}
		if o.Plural != "" {
			cur.Plural = o.Plural
		}
		if cur.Fields == nil {
			cur.Fields = map[string]string{}
		}
		for k, v := range o.Fields {
			if v != "" {
				cur.Fields[k] = v
			}
		}
		l[entity] = cur
	}
}

// LoadLabels returns the default labels with overrides from the JSON file at path
// applied. An empty path returns the defaults.
func LoadLabels(path string) (Labels, error) {
	labels := DefaultLabels()
	if path == "" {
		return labels, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read labels: %w", err)
	}

	var overrides Labels
	if err := json.Unmarshal(data, &overrides); err != nil {
		return nil, fmt.Errorf("parse labels %s: %w", path, err)
	}
	labels.Merge(overrides)
	return labels, nil
}
