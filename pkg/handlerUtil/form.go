package handlerUtil

import (
	"mime/multipart"
	"sort"

	"github.com/gofiber/fiber/v2"
)

// FormFile returns the file uploaded under field. When that field is absent it
// falls back to the first file of any other field, by field name, so clients
// that name the part differently still work. It returns nil when the request
// carries no file.
func FormFile(c *fiber.Ctx, field string) *multipart.FileHeader {
	form, err := c.MultipartForm()
	if err != nil {
		return nil
	}

	if files := form.File[field]; len(files) > 0 {
		return files[0]
	}

	names := make([]string, 0, len(form.File))
	for name, files := range form.File {
		if len(files) > 0 {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return nil
	}

	sort.Strings(names)
	return form.File[names[0]][0]
}
