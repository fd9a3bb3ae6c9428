package vault

import (
	"bytes"
	"context"
	"errors"

	"docvault/internal/crypto"
	"docvault/internal/model"
)

// Upload encrypts data under the owner's document key and persists a new
// record. It requires a logged-in session but no OTP.
//
// Strategy: upload the ciphertext to the blob store first, then record the
// metadata in a single database insert. If the insert fails, the orphaned
// blob is removed best-effort; the store never ends up with a record whose
// ciphertext is missing.
func (s *Service) Upload(ctx context.Context, fileName, mimeType string, data []byte) (string, error) {
	sess, err := s.loadSession(ctx)
	if err != nil {
		return "", err
	}
	if StateOf(sess) == LoggedOut {
		return "", ErrNotAuthenticated
	}

	ciphertext, err := s.cipher.Encrypt(crypto.DocumentKey(sess.Identity), data)
	if err != nil {
		return "", errors.Join(ErrEncryptionFailure, err)
	}

	rec := &model.Record{
		ID:         s.idgen.New(),
		Owner:      sess.Identity,
		FileName:   fileName,
		MimeType:   mimeType,
		SizeBytes:  int64(len(data)),
		UploadedAt: s.clock.Now(),
	}

	if err := s.blobs.Put(ctx, rec.ID, bytes.NewReader(ciphertext), int64(len(ciphertext))); err != nil {
		return "", storeFault("storing ciphertext", err)
	}
	if err := s.store.CreateRecord(ctx, rec); err != nil {
		// Roll back the blob so the failed upload leaves no trace.
		if derr := s.blobs.Delete(ctx, rec.ID); derr != nil {
			s.logger.Warn("orphaned blob left after failed upload", "id", rec.ID, "error", derr)
		}
		return "", storeFault("creating record", err)
	}

	s.logger.Info("document uploaded", "id", rec.ID, "name", fileName, "owner", sess.Identity, "size", rec.SizeBytes)
	return rec.ID, nil
}

// List returns the metadata of every record owned by the current identity,
// in insertion order. No ciphertext is read and no decryption happens.
func (s *Service) List(ctx context.Context) ([]*model.Record, error) {
	sess, err := s.loadSession(ctx)
	if err != nil {
		return nil, err
	}
	if StateOf(sess) == LoggedOut {
		return nil, ErrNotAuthenticated
	}

	recs, err := s.store.FindRecordsByOwner(ctx, sess.Identity)
	if err != nil {
		return nil, storeFault("listing records", err)
	}
	return recs, nil
}

// Download verifies the supplied OTP, then fetches and decrypts the record's
// ciphertext. A successful download consumes the pending code, so each
// download needs a fresh login or resend. Records owned by other users are
// reported as not found.
func (s *Service) Download(ctx context.Context, recordID, code string) (*model.Record, []byte, error) {
	sess, err := s.loadSession(ctx)
	if err != nil {
		return nil, nil, err
	}
	if StateOf(sess) == LoggedOut {
		return nil, nil, ErrNotAuthenticated
	}

	rec, err := s.store.FindRecord(ctx, recordID)
	if err != nil {
		return nil, nil, storeFault("finding record", err)
	}
	if rec == nil || rec.Owner != sess.Identity {
		return nil, nil, ErrNotFound
	}

	if err := s.consumeOTP(ctx, sess, code); err != nil {
		return nil, nil, err
	}

	var buf bytes.Buffer
	if err := s.blobs.Get(ctx, rec.ID, &buf); err != nil {
		return nil, nil, storeFault("fetching ciphertext", err)
	}

	plaintext, err := s.cipher.Decrypt(crypto.DocumentKey(sess.Identity), buf.Bytes())
	if err != nil {
		return nil, nil, errors.Join(ErrDecryptionFailure, err)
	}

	s.logger.Info("document downloaded", "id", rec.ID, "name", rec.FileName, "owner", sess.Identity)
	return rec, plaintext, nil
}

// Delete removes a record and its ciphertext. Requires ownership but no OTP.
// The metadata row is removed first; the blob delete is best-effort, since
// an orphaned blob is unreachable once the record is gone.
func (s *Service) Delete(ctx context.Context, recordID string) error {
	sess, err := s.loadSession(ctx)
	if err != nil {
		return err
	}
	if StateOf(sess) == LoggedOut {
		return ErrNotAuthenticated
	}

	rec, err := s.store.FindRecord(ctx, recordID)
	if err != nil {
		return storeFault("finding record", err)
	}
	if rec == nil {
		return ErrNotFound
	}
	if rec.Owner != sess.Identity {
		return ErrNotOwned
	}

	if err := s.store.DeleteRecord(ctx, rec.ID); err != nil {
		return storeFault("deleting record", err)
	}
	if err := s.blobs.Delete(ctx, rec.ID); err != nil {
		s.logger.Warn("orphaned blob left after delete", "id", rec.ID, "error", err)
	}

	s.logger.Info("document deleted", "id", rec.ID, "owner", sess.Identity)
	return nil
}
