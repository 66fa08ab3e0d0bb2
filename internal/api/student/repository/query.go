package studentRepository

const (
	queryCreateStudent = `
INSERT INTO students (enroll_number, full_name, email, password, batch, course, image_filename, created_at)
VALUES (:enroll_number, :full_name, :email, :password, :batch, :course, :image_filename, :created_at)`

	queryGetByEnrollNumber = `
SELECT enroll_number, full_name, email, password, batch, course, image_filename, created_at
FROM students
    WHERE enroll_number = :enroll_number`

	queryGetWithoutEmbedding = `
SELECT s.enroll_number, s.full_name, s.email, s.password, s.batch, s.course, s.image_filename, s.created_at
FROM students s
LEFT JOIN facial_embeddings f ON f.enroll_number = s.enroll_number
    WHERE f.enroll_number IS NULL
      AND s.image_filename IS NOT NULL
ORDER BY s.created_at, s.enroll_number`

	queryCreateEmbedding = `
INSERT INTO facial_embeddings (enroll_number, embedding, created_at)
VALUES (:enroll_number, :embedding, :created_at)`

	queryGetAllEmbeddings = `
SELECT enroll_number, embedding, created_at
FROM facial_embeddings
ORDER BY created_at, enroll_number`
)
