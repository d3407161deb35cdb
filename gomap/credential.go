package gomap

import (
	"strings"

	"github.com/confix-format/go-confix/crypt"
	"github.com/confix-format/go-confix/encode"
	"github.com/confix-format/go-confix/ir"
	"github.com/confix-format/go-confix/parse"
)

// Credential is a username/secret pair. It is always stored encrypted:
// the record value is two comma-joined envelope blobs, one per part,
// under the user-bound scheme unless WithScheme says otherwise.
type Credential struct {
	Username string
	Secret   string
}

func credentialValue(v any) (Credential, bool) {
	switch x := v.(type) {
	case Credential:
		return x, true
	case *Credential:
		if x == nil {
			return Credential{}, false
		}
		return *x, true
	}
	return Credential{}, false
}

func credentialRecord(name string, c Credential, o *mapOpts) (*ir.Record, error) {
	scheme := o.scheme
	if scheme == "" {
		scheme = ir.UserBoundTag
	}
	p, err := crypt.ForScheme(scheme, o.password)
	if err != nil {
		return nil, err
	}
	userBlob, err := protectPart(p, "Username", c.Username)
	if err != nil {
		return nil, &MarshalError{Name: name, Message: "username part", Err: err}
	}
	secretBlob, err := protectPart(p, "Secret", c.Secret)
	if err != nil {
		return nil, &MarshalError{Name: name, Message: "secret part", Err: err}
	}
	return ir.Scalar(name, ir.CredentialTag, userBlob+","+secretBlob), nil
}

func protectPart(p crypt.Protector, partName, value string) (string, error) {
	text := encode.Join([]*ir.Record{ir.Scalar(partName, ir.StringTag, value)})
	return p.Protect(text)
}

func fromCredential(r *ir.Record, o *mapOpts) (any, error) {
	parts := strings.Split(r.Value, ",")
	if len(parts) != 2 {
		return nil, &UnmarshalError{Name: r.Name, Message: "credential value is not two comma-joined blobs"}
	}
	scheme := o.scheme
	if scheme == "" {
		scheme = ir.UserBoundTag
		if o.password != "" {
			scheme = ir.AES256Tag
		}
	}
	p, err := crypt.ForScheme(scheme, o.password)
	if err != nil {
		return nil, err
	}
	vals := make([]string, 2)
	for i, blob := range parts {
		pt, err := p.Unprotect(blob)
		if err != nil {
			return nil, err
		}
		recs, err := parse.Split(pt, parse.WithWarn(o.warn))
		if err != nil {
			return nil, err
		}
		rec := firstRecord(recs)
		if rec == nil {
			return nil, &UnmarshalError{Name: r.Name, Message: "credential blob holds no record"}
		}
		vals[i] = rec.Value
	}
	return Credential{Username: vals[0], Secret: vals[1]}, nil
}
