package v1handler

import (
	"encoding/json"
	"net/http"
	"slices"
	"strconv"
	"time"

	"psychrometer/pkg/domain"
	"psychrometer/pkg/psychro"
	"psychrometer/pkg/serrors"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
)

// readingRequest is the body of /calculate and /properties. Values are kept
// as decoded so the engine can classify bad types itself.
type readingRequest struct {
	Temperature any
	Humidity    any
	Include     []string

	hasTemperature bool
	hasHumidity    bool
}

func decodeReadingRequest(data []byte) (readingRequest, error) {
	var req readingRequest
	if !jx.Valid(data) {
		return req, serrors.With(serrors.ErrBadRequest, "request body is not valid JSON")
	}

	d := jx.DecodeBytes(data)
	if d.Next() != jx.Object {
		return req, serrors.With(serrors.ErrBadRequest, "request body must be a JSON object")
	}

	if err := d.ObjBytes(func(d *jx.Decoder, key []byte) error {
		switch string(key) {
		case "temperature":
			v, err := decodeScalar(d)
			if err != nil {
				return errors.Wrap(err, "temperature")
			}
			req.Temperature, req.hasTemperature = v, true
		case "humidity":
			v, err := decodeScalar(d)
			if err != nil {
				return errors.Wrap(err, "humidity")
			}
			req.Humidity, req.hasHumidity = v, true
		case "include":
			if err := d.Arr(func(d *jx.Decoder) error {
				s, err := d.Str()
				if err != nil {
					return errors.Wrap(err, "item")
				}
				req.Include = append(req.Include, s)

				return nil
			}); err != nil {
				return errors.Wrap(err, "include")
			}
		default:
			return d.Skip()
		}

		return nil
	}); err != nil {
		return req, serrors.Wrap(serrors.ErrBadRequest, err, "invalid request body")
	}

	switch {
	case !req.hasTemperature:
		return req, serrors.With(serrors.ErrBadRequest, "field \"temperature\" is required")
	case !req.hasHumidity:
		return req, serrors.With(serrors.ErrBadRequest, "field \"humidity\" is required")
	}

	return req, nil
}

// decodeScalar returns numbers as json.Number, strings, bools and null as
// their Go values, and any other JSON value as raw bytes.
func decodeScalar(d *jx.Decoder) (any, error) {
	switch d.Next() {
	case jx.Number:
		n, err := d.Num()
		if err != nil {
			return nil, errors.Wrap(err, "number")
		}

		return json.Number(n.String()), nil
	case jx.String:
		return d.Str()
	case jx.Bool:
		return d.Bool()
	case jx.Null:
		return nil, d.Null()
	default:
		raw, err := d.Raw()
		if err != nil {
			return nil, errors.Wrap(err, "value")
		}

		return []byte(raw), nil
	}
}

// decodeBatchRequest decodes {"readings": [{"temperature": n, "humidity": n}]}.
// Unlike single readings, batch readings must be numbers.
func decodeBatchRequest(data []byte) ([]domain.Reading, error) {
	if !jx.Valid(data) {
		return nil, serrors.With(serrors.ErrBadRequest, "request body is not valid JSON")
	}

	var (
		readings []domain.Reading
		seen     bool
	)
	d := jx.DecodeBytes(data)
	if err := d.ObjBytes(func(d *jx.Decoder, key []byte) error {
		if string(key) != "readings" {
			return d.Skip()
		}
		seen = true

		return d.Arr(func(d *jx.Decoder) error {
			var (
				r        domain.Reading
				hasT     bool
				hasH     bool
				position = len(readings)
			)
			if err := d.ObjBytes(func(d *jx.Decoder, key []byte) error {
				var err error
				switch string(key) {
				case "temperature":
					r.Temperature, err = d.Float64()
					hasT = true
				case "humidity":
					r.Humidity, err = d.Float64()
					hasH = true
				default:
					err = d.Skip()
				}

				return errors.Wrapf(err, "%s", key)
			}); err != nil {
				return errors.Wrapf(err, "readings[%d]", position)
			}
			if !hasT || !hasH {
				return errors.Errorf("readings[%d] needs temperature and humidity", position)
			}
			readings = append(readings, r)

			return nil
		})
	}); err != nil {
		return nil, serrors.Wrap(serrors.ErrBadRequest, err, "invalid request body")
	}
	if !seen {
		return nil, serrors.With(serrors.ErrBadRequest, "field \"readings\" is required")
	}

	return readings, nil
}

func writeJSON(w http.ResponseWriter, status int, encode func(e *jx.Encoder)) {
	var e jx.Encoder
	encode(&e)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(e.Bytes())
}

func encodeError(e *jx.Encoder, body ErrorBody) {
	e.Obj(func(e *jx.Encoder) {
		e.Field("error", func(e *jx.Encoder) {
			e.Obj(func(e *jx.Encoder) {
				e.Field("code", func(e *jx.Encoder) { e.Str(body.Code) })
				e.Field("message", func(e *jx.Encoder) { e.Str(body.Message) })
			})
		})
	})
}

func encodeResult(e *jx.Encoder, r psychro.Result) {
	e.Obj(func(e *jx.Encoder) {
		e.Field("absolute_humidity", func(e *jx.Encoder) { e.Float64(r.AbsoluteHumidity) })
		e.Field("temperature", func(e *jx.Encoder) { e.Float64(r.Temperature) })
		e.Field("humidity", func(e *jx.Encoder) { e.Int(r.Humidity) })
		e.Field("unit", func(e *jx.Encoder) { e.Str(r.Unit) })
	})
}

func encodeProperties(e *jx.Encoder, p psychro.Properties) {
	optional := []struct {
		name  string
		value *float64
	}{
		{"absolute_humidity", p.AbsoluteHumidity},
		{"dewpoint", p.Dewpoint},
		{"wet_bulb", p.WetBulb},
		{"enthalpy", p.Enthalpy},
		{"humidity_ratio", p.HumidityRatio},
		{"saturation_vapor_pressure", p.SaturationVaporPressure},
		{"vapor_pressure", p.VaporPressure},
		{"vapor_pressure_pa", p.VaporPressurePa},
	}

	e.Obj(func(e *jx.Encoder) {
		e.Field("temperature", func(e *jx.Encoder) { e.Float64(p.Temperature) })
		e.Field("humidity", func(e *jx.Encoder) { e.Int(p.Humidity) })
		for _, f := range optional {
			if f.value == nil {
				continue
			}
			e.Field(f.name, func(e *jx.Encoder) { e.Float64(*f.value) })
		}
		e.Field("units", func(e *jx.Encoder) { encodeStringMap(e, p.Units) })
	})
}

func encodeStringMap(e *jx.Encoder, m map[string]string) {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	e.Obj(func(e *jx.Encoder) {
		for _, k := range keys {
			e.Field(k, func(e *jx.Encoder) { e.Str(m[k]) })
		}
	})
}

func encodeInfo(e *jx.Encoder, opts Options, d psychro.Description) {
	e.Obj(func(e *jx.Encoder) {
		e.Field("name", func(e *jx.Encoder) { e.Str(opts.Name) })
		e.Field("version", func(e *jx.Encoder) { e.Str(opts.Version) })
		e.Field("description", func(e *jx.Encoder) { e.Str(opts.Description) })
		e.Field("method", func(e *jx.Encoder) { e.Str(string(d.Method)) })
		e.Field("formulas", func(e *jx.Encoder) {
			e.Obj(func(e *jx.Encoder) {
				for _, f := range d.Formulas {
					e.Field(f.Name, func(e *jx.Encoder) { e.Str(f.Expression) })
				}
			})
		})
		e.Field("constants", func(e *jx.Encoder) {
			e.Arr(func(e *jx.Encoder) {
				for _, c := range d.Constants {
					e.Obj(func(e *jx.Encoder) {
						e.Field("name", func(e *jx.Encoder) { e.Str(c.Name) })
						e.Field("value", func(e *jx.Encoder) { e.Float64(c.Value) })
						e.Field("unit", func(e *jx.Encoder) { e.Str(c.Unit) })
					})
				}
			})
		})
		e.Field("units", func(e *jx.Encoder) { encodeStringMap(e, d.Units) })
		e.Field("limits", func(e *jx.Encoder) {
			e.Obj(func(e *jx.Encoder) {
				e.Field("temperature_min", func(e *jx.Encoder) { e.Float64(d.TemperatureLimit.Min) })
				e.Field("temperature_max", func(e *jx.Encoder) { e.Float64(d.TemperatureLimit.Max) })
				e.Field("humidity_min", func(e *jx.Encoder) { e.Float64(d.HumidityLimit.Min) })
				e.Field("humidity_max", func(e *jx.Encoder) { e.Float64(d.HumidityLimit.Max) })
			})
		})
		e.Field("precision", func(e *jx.Encoder) {
			e.Obj(func(e *jx.Encoder) {
				e.Field("decimal_places", func(e *jx.Encoder) { e.Int(d.Precision) })
				e.Field("rounding", func(e *jx.Encoder) { e.Str(string(d.Rounding)) })
			})
		})
		e.Field("pressure", func(e *jx.Encoder) {
			e.Obj(func(e *jx.Encoder) {
				e.Field("value", func(e *jx.Encoder) { e.Float64(d.Pressure.Value) })
				e.Field("unit", func(e *jx.Encoder) { e.Str(d.Pressure.Unit) })
			})
		})
	})
}

func encodeBatch(e *jx.Encoder, b *domain.Batch) {
	e.Obj(func(e *jx.Encoder) {
		e.Field("id", func(e *jx.Encoder) { e.Str(b.ID.String()) })
		e.Field("status", func(e *jx.Encoder) { e.Str(string(b.Status)) })
		e.Field("readings", func(e *jx.Encoder) { e.Int(len(b.Readings)) })
		e.Field("failures", func(e *jx.Encoder) { e.Int(b.Failures()) })
		e.Field("attempts", func(e *jx.Encoder) { e.UInt(b.Attempts) })
		e.Field("items", func(e *jx.Encoder) {
			e.Arr(func(e *jx.Encoder) {
				for i := range b.Items {
					encodeBatchItem(e, &b.Items[i])
				}
			})
		})
		e.Field("createdAt", func(e *jx.Encoder) { e.Str(b.CreatedAt.UTC().Format(time.RFC3339Nano)) })
		if !b.UpdatedAt.IsZero() {
			e.Field("updatedAt", func(e *jx.Encoder) { e.Str(b.UpdatedAt.UTC().Format(time.RFC3339Nano)) })
		}
	})
}

func encodeBatchItem(e *jx.Encoder, item *domain.BatchItem) {
	e.Obj(func(e *jx.Encoder) {
		e.Field("index", func(e *jx.Encoder) { e.Int(item.Index) })
		e.Field("reading", func(e *jx.Encoder) {
			e.Obj(func(e *jx.Encoder) {
				e.Field("temperature", func(e *jx.Encoder) { e.Float64(item.Reading.Temperature) })
				e.Field("humidity", func(e *jx.Encoder) { e.Float64(item.Reading.Humidity) })
			})
		})
		if item.Properties != nil {
			e.Field("properties", func(e *jx.Encoder) { encodeProperties(e, *item.Properties) })
		}
		if item.Error != nil {
			e.Field("error", func(e *jx.Encoder) {
				e.Obj(func(e *jx.Encoder) {
					e.Field("code", func(e *jx.Encoder) { e.Str(item.Error.Code) })
					e.Field("message", func(e *jx.Encoder) { e.Str(item.Error.Message) })
				})
			})
		}
	})
}

func encodeBatchList(e *jx.Encoder, batches []domain.Batch, nextCursor string) {
	e.Obj(func(e *jx.Encoder) {
		e.Field("items", func(e *jx.Encoder) {
			e.Arr(func(e *jx.Encoder) {
				for i := range batches {
					encodeBatch(e, &batches[i])
				}
			})
		})
		e.Field("nextCursor", func(e *jx.Encoder) {
			if nextCursor == "" {
				e.Null()

				return
			}
			e.Str(nextCursor)
		})
	})
}

func parseLimit(s string) (uint, error) {
	if s == "" {
		return 0, nil
	}
	n, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, serrors.Wrap(serrors.ErrBadRequest, err, "limit must be a positive integer")
	}

	return uint(n), nil
}
