package entities

import "strings"

const (
	// PlaceholderDir prefixes every placeholder reference inserted at paste time.
	PlaceholderDir = ".images/"
	// AssetDir is the directory, next to the owning note, that receives uploaded assets.
	AssetDir = "assets/"
	// PastedImageAlt is the alt text of the markdown image inserted on paste.
	PastedImageAlt = "pasted image"
)

// PendingAsset is a pasted binary waiting to be uploaded on the next save.
type PendingAsset struct {
	Placeholder string
	Payload     []byte
	MediaType   string
}

// AssetRename maps a placeholder reference to the committed path that replaces it.
type AssetRename struct {
	From string
	To   string
}

// MarkdownImage is the reference inserted into a document when a binary is pasted.
func MarkdownImage(placeholder string) string {
	return "![" + PastedImageAlt + "](" + placeholder + ")"
}

// AssetTargetPath derives the committed path of an asset from its placeholder:
// the document directory, then assets/, then the placeholder file name.
func AssetTargetPath(documentDir, placeholder string) string {
	name := strings.TrimPrefix(placeholder, PlaceholderDir)
	name = strings.TrimLeft(name, "/")
	target := AssetDir + name
	if documentDir == "" {
		return target
	}
	return strings.TrimSuffix(documentDir, "/") + "/" + target
}

// RewritePlaceholders replaces every literal occurrence of each rename's From
// with its To, in order.
func RewritePlaceholders(content string, renames []AssetRename) string {
	for _, rename := range renames {
		if rename.From == "" {
			continue
		}
		content = strings.ReplaceAll(content, rename.From, rename.To)
	}
	return content
}

// ExtensionForMediaType maps an image media type to the extension used in
// placeholder names; anything unrecognised becomes png.
func ExtensionForMediaType(mediaType string) string {
	switch {
	case strings.Contains(mediaType, "png"):
		return "png"
	case strings.Contains(mediaType, "jpeg"), strings.Contains(mediaType, "jpg"):
		return "jpg"
	case strings.Contains(mediaType, "gif"):
		return "gif"
	case strings.Contains(mediaType, "webp"):
		return "webp"
	default:
		return "png"
	}
}
