package pgdb

import "context"

type DiagnosticsRepo struct {
	Conn
}

func NewDiagnosticsRepo(c Conn) *DiagnosticsRepo {
	return &DiagnosticsRepo{c}
}

func (r *DiagnosticsRepo) Ping(ctx context.Context) error {
	var one int
	if err := r.get(ctx, &one, r.SqlBuilder.Select("1")); err != nil {
		return err
	}

	return nil
}
