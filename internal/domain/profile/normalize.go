package profile

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Normalize converts a persisted record into fully populated Data. It never fails:
// missing or malformed columns fall back to their empty values.
func Normalize(raw *Record) Data {
	if raw == nil {
		return NewDefault()
	}

	name, lastName := splitFullName(deref(raw.FullName))
	avatarURL := deref(raw.AvatarURL)

	themeColor := DefaultThemeColor
	if raw.ThemeColor != nil {
		themeColor = *raw.ThemeColor
	}

	return Data{
		PersonalInfo: PersonalInfo{
			Name:        name,
			LastName:    lastName,
			Role:        deref(raw.Role),
			Photo:       avatarURL,
			Photos:      normalizePhotos(raw.AvatarGallery, avatarURL),
			ContactInfo: NormalizeContactInfo(raw.ContactInfo),
		},
		Skills:     SkillSet{Professional: normalizeSkills(raw.Skills)},
		Experience: normalizeExperience(raw.Experience),
		Education:  normalizeEducation(raw.Education),
		Objective:  deref(raw.Bio),
		ThemeColor: themeColor,
	}
}

// ToRecord builds the persisted shape of data. Normalize(ToRecord(d)) == d for
// names without inner spaces.
func ToRecord(ownerID uuid.UUID, data Data, updatedAt time.Time) *Record {
	fullName := data.PersonalInfo.Name
	if data.PersonalInfo.LastName != "" {
		fullName += " " + data.PersonalInfo.LastName
	}

	skills, _ := json.Marshal(SkillSet{Professional: nonNil(data.Skills.Professional)})
	experience, _ := json.Marshal(nonNilExperience(data.Experience))
	education, _ := json.Marshal(nonNilEducation(data.Education))
	contact, _ := json.Marshal(data.PersonalInfo.ContactInfo)

	return &Record{
		OwnerID:       ownerID,
		FullName:      &fullName,
		Role:          strPtr(data.PersonalInfo.Role),
		Bio:           strPtr(data.Objective),
		Skills:        skills,
		Experience:    experience,
		Education:     education,
		ContactInfo:   contact,
		ThemeColor:    strPtr(data.ThemeColor),
		AvatarURL:     strPtr(data.PersonalInfo.Photo),
		AvatarGallery: append([]string(nil), data.PersonalInfo.Photos...),
		UpdatedAt:     updatedAt,
	}
}

// NormalizeContactInfo keeps only email and phone. Legacy keys such as linkedin
// or github are dropped.
func NormalizeContactInfo(raw json.RawMessage) ContactInfo {
	obj, _ := decode(raw).(map[string]any)
	return ContactInfo{
		Email: toString(obj["email"]),
		Phone: toString(obj["phone"]),
	}
}

// PadPhotos returns a copy of photos padded with empty slots up to MinPhotoSlots.
func PadPhotos(photos []string) []string {
	out := make([]string, len(photos), max(len(photos), MinPhotoSlots))
	copy(out, photos)
	for len(out) < MinPhotoSlots {
		out = append(out, "")
	}
	return out
}

func splitFullName(fullName string) (string, string) {
	name, lastName, _ := strings.Cut(fullName, " ")
	return name, lastName
}

func normalizePhotos(gallery []string, avatarURL string) []string {
	if len(gallery) > 0 {
		return PadPhotos(gallery)
	}
	return []string{avatarURL, "", ""}
}

func normalizeSkills(raw json.RawMessage) []string {
	obj, _ := decode(raw).(map[string]any)
	list, ok := obj["professional"].([]any)
	if !ok {
		return []string{}
	}
	return toStrings(list)
}

func normalizeExperience(raw json.RawMessage) []Experience {
	list, _ := decode(raw).([]any)
	out := make([]Experience, 0, len(list))
	for i, item := range list {
		entry, _ := item.(map[string]any)

		bullets := []string{}
		if b, ok := entry["bullets"].([]any); ok {
			bullets = toStrings(b)
		}

		out = append(out, Experience{
			ID:          toID(entry["id"], i+1),
			Period:      toString(entry["period"]),
			Title:       experienceTitle(entry),
			Description: toString(entry["description"]),
			Bullets:     bullets,
		})
	}
	return out
}

func experienceTitle(entry map[string]any) string {
	if title := toString(entry["title"]); title != "" {
		return title
	}
	role := toString(entry["role"])
	company := toString(entry["company"])
	if role != "" && company != "" {
		return role + " — " + company
	}
	return role
}

func normalizeEducation(raw json.RawMessage) []Education {
	list, _ := decode(raw).([]any)
	out := make([]Education, 0, len(list))
	for i, item := range list {
		entry, _ := item.(map[string]any)

		period, ok := entry["period"]
		if !ok || period == nil {
			period = entry["year"]
		}

		out = append(out, Education{
			ID:          toID(entry["id"], i+1),
			Period:      toString(period),
			Degree:      toString(entry["degree"]),
			Institution: toString(entry["institution"]),
		})
	}
	return out
}

func decode(raw json.RawMessage) any {
	if len(raw) == 0 {
		return nil
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil
	}
	return v
}

func toString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return ""
		}
		return string(b)
	}
}

func toStrings(list []any) []string {
	out := make([]string, 0, len(list))
	for _, v := range list {
		out = append(out, toString(v))
	}
	return out
}

func toID(v any, fallback int) int {
	switch t := v.(type) {
	case float64:
		if t == float64(int(t)) {
			return int(t)
		}
	case string:
		if n, err := strconv.Atoi(t); err == nil {
			return n
		}
	}
	return fallback
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func nonNilExperience(s []Experience) []Experience {
	if s == nil {
		return []Experience{}
	}
	out := make([]Experience, len(s))
	for i, e := range s {
		e.Bullets = nonNil(e.Bullets)
		out[i] = e
	}
	return out
}

func nonNilEducation(s []Education) []Education {
	if s == nil {
		return []Education{}
	}
	return s
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func strPtr(s string) *string {
	return &s
}
