package repository

import "context"

// AvatarKeys returns every avatar object key referenced by a user.
func (r *UserRepository) AvatarKeys(ctx context.Context) ([]string, error) {
	const query = `SELECT avatar FROM users WHERE avatar IS NOT NULL`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, err
		}
		keys = append(keys, key)
	}
	return keys, rows.Err()
}
